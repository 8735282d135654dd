package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/akinalp/quill/models"
)

// Dosyadaki id'ler tutarlı değil: eski kayıtlarda "id": "3" gibi string
// değerler var. Eşleştirme bu yüzden gevşektir: 3, 3.0 ve "3" aynı id sayılır.

// matchesID, kaydın id alanı path'teki id ile gevşek eşleşiyor mu?
func matchesID(record json.RawMessage, id int) bool {
	raw, ok := models.PostField(record, "id")
	if !ok {
		return false
	}
	n, ok := looseNumber(raw)
	return ok && n == float64(id)
}

// matchesSlug, kaydın slug alanı birebir aynı string mi?
func matchesSlug(record json.RawMessage, slug string) bool {
	raw, ok := models.PostField(record, "slug")
	if !ok {
		return false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	return s == slug
}

// looseNumber, sayı, sayısal string ve bool değerleri sayıya çevirir.
// Boş string 0 sayılır.
func looseNumber(raw json.RawMessage) (float64, bool) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}

	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// nextIDAfter, son kaydın id'sinden bir sonraki id'yi hesaplar.
//
// id yoksa veya "boş" bir değerse (0, "", null, false) sonuç 1'dir.
// String id'lerde baştaki tam sayı kısmı alınır ("12abc" → 13).
func nextIDAfter(last json.RawMessage) (int, error) {
	raw, ok := models.PostField(last, "id")
	if !ok {
		return 1, nil
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return 0, fmt.Errorf("failed to read last post id: %w", err)
	}

	switch x := v.(type) {
	case nil:
		return 1, nil
	case bool:
		if !x {
			return 1, nil
		}
	case json.Number:
		f, err := x.Float64()
		if err == nil && math.Abs(f) < 1e15 {
			return int(f) + 1, nil
		}
	case string:
		if x == "" {
			return 1, nil
		}
		if n, ok := leadingInt(x); ok {
			return n + 1, nil
		}
	}
	return 0, fmt.Errorf("last post has a non-numeric id: %s", raw)
}

// leadingInt, string'in başındaki işaretli tam sayıyı okur.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

// appendComment, kaydın comments dizisine yorumu ekler. Diğer alanlar ve
// sıraları korunur. comments alanı yoksa veya dizi değilse error döner.
func appendComment(record json.RawMessage, comment string) (json.RawMessage, error) {
	obj, err := parseObject(record)
	if err != nil {
		return nil, err
	}

	raw, ok := obj.get("comments")
	if !ok {
		return nil, errors.New("post has no comments array")
	}
	var comments []json.RawMessage
	if err := json.Unmarshal(raw, &comments); err != nil || comments == nil {
		return nil, errors.New("post comments field is not an array")
	}

	encoded, err := marshalNoEscape(comment)
	if err != nil {
		return nil, err
	}
	comments = append(comments, encoded)

	updated, err := marshalNoEscape(comments)
	if err != nil {
		return nil, err
	}
	obj.set("comments", updated)
	return obj.MarshalJSON()
}

// orderedObject, bir JSON objesini alan sırasını bozmadan düzenlemek için.
// map[string]any üzerinden geçmek anahtarları alfabetik sıraya dizerdi.
type orderedObject struct {
	keys   []string
	values map[string]json.RawMessage
}

func parseObject(raw json.RawMessage) (*orderedObject, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("post record is not a JSON object")
	}

	obj := &orderedObject{values: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in object", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		obj.set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func (o *orderedObject) get(key string) (json.RawMessage, bool) {
	v, ok := o.values[key]
	return v, ok
}

// set, var olan anahtarın yerini korur; yeni anahtar sona eklenir.
// Tekrarlanan anahtarlarda son değer kazanır.
func (o *orderedObject) set(key string, value json.RawMessage) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalNoEscape(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(o.values[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalNoEscape, json.Marshal gibidir ama "<", ">", "&" karakterlerini
// kaçışlamaz. Yazı içerikleri HTML taşır ve dosyada okunur kalmalıdır.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
