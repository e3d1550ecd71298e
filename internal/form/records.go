package form

import "github.com/google/uuid"

// RecordList holds one structured-record family (pricing details, share
// packages, maintenance templates, payment plans, highlights): an ordered
// list of whole records edited by local key. Records from the server carry
// their own id inside T; the whole list is re-sent on update.
type RecordList[T any] struct {
	entries []recordEntry[T]
}

type recordEntry[T any] struct {
	key   string
	value T
}

// NewRecordList seeds the list with server-origin records, in fetch order.
func NewRecordList[T any](fetched []T) *RecordList[T] {
	l := &RecordList[T]{}
	for _, v := range fetched {
		l.entries = append(l.entries, recordEntry[T]{key: uuid.NewString(), value: v})
	}
	return l
}

// Add appends a record and returns its local key.
func (l *RecordList[T]) Add(v T) string {
	e := recordEntry[T]{key: uuid.NewString(), value: v}
	l.entries = append(l.entries, e)
	return e.key
}

// Update replaces the record held under key.
func (l *RecordList[T]) Update(key string, v T) bool {
	for i := range l.entries {
		if l.entries[i].key == key {
			l.entries[i].value = v
			return true
		}
	}
	return false
}

// Remove drops the record held under key.
func (l *RecordList[T]) Remove(key string) bool {
	for i := range l.entries {
		if l.entries[i].key == key {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the record held under key.
func (l *RecordList[T]) Get(key string) (T, bool) {
	for i := range l.entries {
		if l.entries[i].key == key {
			return l.entries[i].value, true
		}
	}
	var zero T
	return zero, false
}

// Keys returns the local keys in list order.
func (l *RecordList[T]) Keys() []string {
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.key
	}
	return out
}

// Records returns a snapshot of the values in list order.
func (l *RecordList[T]) Records() []T {
	if len(l.entries) == 0 {
		return nil
	}
	out := make([]T, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.value
	}
	return out
}

func (l *RecordList[T]) Len() int { return len(l.entries) }
