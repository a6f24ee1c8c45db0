package grpcserver

import (
	"encoding/base64"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	maxPageSize     = 100 // Maximum allowed page size for list operations.
	defaultPageSize = 20  // Default page size for list operations.
	cursorSeparator = "|" // Separator for cursor components.
)

// cursor marks the last item of a page in (timestamp desc, id desc) order.
type cursor struct {
	micros int64
	id     int64
}

// after reports whether an item keyed (ts, id) comes after c in newest-first order.
func (c cursor) after(ts time.Time, id int64) bool {
	m := ts.UnixMicro()
	return m < c.micros || (m == c.micros && id < c.id)
}

// encodeCursor builds an opaque next_page_token from a timestamp and an id.
func encodeCursor(ts time.Time, id int64) string {
	raw := strconv.FormatInt(ts.UnixMicro(), 10) + cursorSeparator + strconv.FormatInt(id, 10)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// decodeCursor parses an opaque page_token.
func decodeCursor(token string) (cursor, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return cursor{}, fmt.Errorf("base64: %w", err)
	}
	parts := strings.SplitN(string(b), cursorSeparator, 2)
	if len(parts) != 2 {
		return cursor{}, fmt.Errorf("invalid cursor format")
	}
	micros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return cursor{}, fmt.Errorf("parse timestamp: %w", err)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return cursor{}, fmt.Errorf("parse id: %w", err)
	}
	return cursor{micros: micros, id: id}, nil
}

// page reads one page from a newest-first sequence. The next token is only
// set when at least one more item exists. Sequence errors are returned as is.
func page[T any](seq iter.Seq2[T, error], req *PageRequest, key func(T) (time.Time, int64)) ([]T, string, error) {
	size := int(defaultPageSize)
	var token string
	if req != nil {
		if req.PageSize > 0 {
			size = int(req.PageSize)
		}
		token = req.PageToken
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	var from *cursor
	if token != "" {
		c, err := decodeCursor(token)
		if err != nil {
			return nil, "", status.Errorf(codes.InvalidArgument, "invalid page_token: %v", err)
		}
		from = &c
	}

	out := make([]T, 0, size)
	next := ""
	for v, err := range seq {
		if err != nil {
			return nil, "", err
		}
		if from != nil && !from.after(key(v)) {
			continue
		}
		if len(out) == size {
			next = encodeCursor(key(out[len(out)-1]))
			break
		}
		out = append(out, v)
	}
	return out, next, nil
}
