// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Service ve repository katmanları bu sentinel error'ları wrap ederek döner:
//
//	return fmt.Errorf("%w: post %d", pkg.ErrNotFound, id)
//
// Handler katmanı errors.Is() ile HTTP status code'una çevirir.
package pkg

import "errors"

// Domain-level error'lar.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrBadRequest      = errors.New("bad request")
	ErrTooManyRequests = errors.New("too many requests")
)
