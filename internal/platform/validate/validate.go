// Package validate agrupa los predicados de forma que usan los servicios antes de tocar el store.
// No devuelven errores: el caller decide qué error de dominio corresponde.
package validate

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// String: no vacío y no compuesto solo por espacios.
func String(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Identifier acepta ids con la sintaxis del document store (ObjectID de 24 hex).
func Identifier(id string) bool {
	return String(id) && primitive.IsValidObjectID(id)
}

// Int es true solo para valores enteros de Go. Un string numérico ("3") no cuenta:
// el caller tiene que parsearlo antes.
func Int(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

// Zip: exactamente 5 dígitos decimales.
func Zip(z string) bool {
	if len(z) != 5 {
		return false
	}
	for i := 0; i < len(z); i++ {
		if z[i] < '0' || z[i] > '9' {
			return false
		}
	}
	return true
}
