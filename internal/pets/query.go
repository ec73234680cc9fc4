package pets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidQuery = errors.New("invalid query")

var orderColumns = map[string]bool{"id": true, "name": true, "species": true}

// Query is the filter/sort/limit set understood by the repository. The zero
// value selects every pet in id order; a zero Limit means no limit.
type Query struct {
	Species   string
	Name      string
	OrderBy   string
	Desc      bool
	Limit     int
	Offset    int
	CountOnly bool
}

// ParseQuery reads tokens such as
//
//	species=Cat order_by=-name limit=3 offset=3 count
//
// Values may be quoted: species='Cat'.
func ParseQuery(tokens []string) (Query, error) {
	var q Query

	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		key, value, hasValue := strings.Cut(tok, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.Trim(strings.TrimSpace(value), `'"`)

		if !hasValue {
			switch key {
			case "all":
			case "count":
				q.CountOnly = true
			default:
				return Query{}, fmt.Errorf("%w: unknown token %q", ErrInvalidQuery, tok)
			}
			continue
		}

		switch key {
		case "species":
			q.Species = value
		case "name":
			q.Name = value
		case "order_by", "order":
			col := value
			if strings.HasPrefix(col, "-") {
				q.Desc = true
				col = col[1:]
			}
			col = strings.ToLower(col)
			if !orderColumns[col] {
				return Query{}, fmt.Errorf("%w: cannot order by %q", ErrInvalidQuery, value)
			}
			q.OrderBy = col
		case "limit":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return Query{}, fmt.Errorf("%w: limit must be a non-negative integer, got %q", ErrInvalidQuery, value)
			}
			q.Limit = n
		case "offset":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return Query{}, fmt.Errorf("%w: offset must be a non-negative integer, got %q", ErrInvalidQuery, value)
			}
			q.Offset = n
		default:
			return Query{}, fmt.Errorf("%w: unknown field %q", ErrInvalidQuery, key)
		}
	}

	return q, nil
}
