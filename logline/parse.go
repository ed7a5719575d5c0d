package logline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// VolumeScale is the number of units per logged volume. Positions are
// counted in int64 units, so a volume must scale to less than 2^63.
const VolumeScale = 1000

const maxUnits float64 = 1 << 63

// Parser turns classified lines into events following a price schema and
// an order schema.
type Parser struct {
	price Schema
	order Schema
}

// NewParser validates both schemas and returns a parser for them.
func NewParser(price, order Schema) (*Parser, error) {
	if err := price.Validate(KindPrice); err != nil {
		return nil, err
	}
	if err := order.Validate(KindOrder); err != nil {
		return nil, err
	}
	return &Parser{
		price: append(Schema(nil), price...),
		order: append(Schema(nil), order...),
	}, nil
}

// DefaultParser parses the default price variant and OrderSchema.
func DefaultParser() *Parser {
	price, _ := Variant(DefaultVariant)
	return &Parser{price: price, order: OrderSchema}
}

// ParsePrice parses a line already classified as KindPrice.
func (p *Parser) ParsePrice(line string) (PriceEvent, error) {
	v, err := extract(line, KindPrice, p.price)
	if err != nil {
		return PriceEvent{}, err
	}
	return PriceEvent{
		Time:   v.time,
		Mid:    v.floats[RoleMid],
		Open:   v.open,
		Spread: v.floats[RoleSpread],
		Book:   v.book,
		Aux:    v.floats[RoleAux],
		Hint:   v.floats[RoleHint],
	}, nil
}

// ParseOrder parses a line already classified as KindOrder.
func (p *Parser) ParseOrder(line string) (OrderEvent, error) {
	v, err := extract(line, KindOrder, p.order)
	if err != nil {
		return OrderEvent{}, err
	}
	o := OrderEvent{
		Time:      v.time,
		Price:     v.floats[RolePrice],
		Volume:    v.floats[RoleVolume],
		Direction: v.direction,
		Action:    v.action,
	}
	if o.Volume <= 0 || o.Volume*VolumeScale >= maxUnits {
		return OrderEvent{}, &FieldError{
			Line:  line,
			Field: v.pos[RoleVolume],
			Name:  "volume",
			Err:   fmt.Errorf("%w: volume must be positive and below %g, got %v", ErrMalformedLine, maxUnits/VolumeScale, o.Volume),
		}
	}
	return o, nil
}

type values struct {
	time      time.Time
	floats    map[Role]float64
	pos       map[Role]int
	open      Range
	book      [4]float64
	direction Direction
	action    Action
}

// extract walks the fields of line in schema order. It never searches by
// name: the Nth token must carry the Nth expected name.
func extract(line string, kind Kind, s Schema) (values, error) {
	fields := strings.Split(line, " ")
	fail := func(idx int, name string, err error) (values, error) {
		return values{}, &FieldError{Line: line, Field: idx + 1, Name: name, Err: err}
	}

	if len(fields) <= metaFields {
		return fail(len(fields), "type", fmt.Errorf("%w: expected at least %d fields, got %d", ErrMalformedLine, metaFields+1, len(fields)))
	}

	ts, err := ParseTime(fields[0])
	if err != nil {
		return fail(0, "timestamp", err)
	}

	tag, ok := typeTag(fields[metaFields])
	if !ok || kindTags[tag] != kind {
		return fail(metaFields, "type", fmt.Errorf("%w: expected type:%s, got %q", ErrMalformedLine, kind, fields[metaFields]))
	}

	v := values{
		time:   ts,
		floats: make(map[Role]float64, len(s)),
		pos:    make(map[Role]int, len(s)),
	}
	idx := metaFields + 1
	for _, spec := range s {
		if idx >= len(fields) {
			return fail(idx, spec.Name, fmt.Errorf("%w: missing %s field", ErrMalformedLine, spec.Name))
		}
		name, raw, ok := strings.Cut(fields[idx], ":")
		if !ok || name != spec.Name {
			return fail(idx, spec.Name, fmt.Errorf("%w: expected %s:<value>, got %q", ErrMalformedLine, spec.Name, fields[idx]))
		}
		v.pos[spec.Role] = idx + 1

		switch spec.Kind {
		case FieldFloat:
			f, err := parseFloat(raw)
			if err != nil {
				return fail(idx, spec.Name, err)
			}
			v.floats[spec.Role] = f
		case FieldRange:
			r, err := parseRange(raw)
			if err != nil {
				return fail(idx, spec.Name, err)
			}
			v.open = r
		case FieldBook:
			if idx+len(v.book) > len(fields) {
				return fail(len(fields), spec.Name, fmt.Errorf("%w: %s needs %d values", ErrMalformedLine, spec.Name, len(v.book)))
			}
			for i := range v.book {
				tok := raw
				if i > 0 {
					tok = fields[idx+i]
				}
				f, err := parseFloat(tok)
				if err != nil {
					return fail(idx+i, spec.Name, err)
				}
				v.book[i] = f
			}
			idx += len(v.book) - 1
		case FieldDirection:
			d, err := ParseDirection(raw)
			if err != nil {
				return fail(idx, spec.Name, err)
			}
			v.direction = d
		case FieldAction:
			a, err := ParseAction(raw)
			if err != nil {
				return fail(idx, spec.Name, err)
			}
			v.action = a
		default:
			return fail(idx, spec.Name, fmt.Errorf("unsupported field kind %q", spec.Kind))
		}
		idx++
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrMalformedLine, s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrMalformedLine, s)
	}
	return f, nil
}

// parseRange splits "lo-hi". The separator is the first '-' after the
// first byte so a negative low bound still parses.
func parseRange(s string) (Range, error) {
	if len(s) < 3 {
		return Range{}, fmt.Errorf("%w: bad range %q", ErrMalformedLine, s)
	}
	i := strings.IndexByte(s[1:], '-')
	if i < 0 {
		return Range{}, fmt.Errorf("%w: bad range %q", ErrMalformedLine, s)
	}
	lo, err := parseFloat(s[:i+1])
	if err != nil {
		return Range{}, err
	}
	hi, err := parseFloat(s[i+2:])
	if err != nil {
		return Range{}, err
	}
	return Range{Low: lo, High: hi}, nil
}
