package models

// ScriptPosition, enjekte edilen script'in template'te nereye ekleneceği.
type ScriptPosition string

const (
	ScriptPositionHead ScriptPosition = "head"
	ScriptPositionBody ScriptPosition = "body"
)

// ClosingTag, pozisyonun önüne ekleme yapılacak kapanış tag'ini döner.
// Geçersiz pozisyonda ok=false.
func (p ScriptPosition) ClosingTag() (string, bool) {
	switch p {
	case ScriptPositionHead:
		return "</head>", true
	case ScriptPositionBody:
		return "</body>", true
	default:
		return "", false
	}
}

// AddScriptRequest, POST /api/add-script body'si.
type AddScriptRequest struct {
	Script   string         `json:"script"`
	Pin      string         `json:"pin"`
	Position ScriptPosition `json:"position"`
}
