package id

import (
	"crypto/md5"
	"fmt"
	"io"

	"github.com/gofrs/uuid"
)

// GenTraceID new random trace id
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// TraceIDFrom deterministic trace id from text
func TraceIDFrom(text string) string {
	h := md5.New()
	_, _ = io.WriteString(h, text)
	sum := h.Sum(nil)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.FromBytesOrNil(sum).String()
}

// UUIDByName name based uuid under the uuidStr namespace, uuidStr that is
// not a uuid is hashed into one first
func UUIDByName(uuidStr, name string) string {
	ns, err := uuid.FromString(uuidStr)
	if err != nil {
		ns = uuid.FromStringOrNil(TraceIDFrom(uuidStr))
	}

	return uuid.NewV5(ns, name).String()
}

// EventTraceID trace id of the idx-th event emitted by an operation
func EventTraceID(operationTrace string, idx int) string {
	return UUIDByName(operationTrace, fmt.Sprintf("event:%d", idx))
}

// IsTraceID valid uuid
func IsTraceID(v string) bool {
	_, err := uuid.FromString(v)
	return err == nil
}
