package sigserlic

import "time"

// metadata rides along with key material: when the key was created,
// when it is supposed to expire, and a free-form comment. The comment
// is advisory and never part of any signed byte stream. created_at is
// stamped once at construction and never mutated afterwards.
type metadata[C any] struct {
	createdAt time.Time
	expiredAt *time.Time
	comment   *C
}

func newMetadata[C any]() metadata[C] {
	return metadata[C]{createdAt: timeNow()}
}

func (m metadata[C]) withComment(comment C) metadata[C] {
	m.comment = &comment
	return m
}

func (m metadata[C]) withExpiration(unix int64) (metadata[C], error) {
	ts, err := parseUnixTimestamp(unix)
	if err != nil {
		return metadata[C]{}, err
	}
	m.expiredAt = &ts
	return m, nil
}

// clone detaches the optional fields so a derived copy is a value copy,
// not a live view of the original.
func (m metadata[C]) clone() metadata[C] {
	out := metadata[C]{createdAt: m.createdAt}
	if m.expiredAt != nil {
		ts := *m.expiredAt
		out.expiredAt = &ts
	}
	if m.comment != nil {
		c := *m.comment
		out.comment = &c
	}
	return out
}
