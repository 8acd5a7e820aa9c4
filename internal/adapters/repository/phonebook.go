package repository

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/mobilectl/core/internal/domain/entities"
)

// record is the current on-disk value shape.
type record struct {
	Phone string `json:"phone"`
	Alias string `json:"alias"`
}

// phonebook is the in-memory image of the store file. Key order follows the
// file; new names are appended.
type phonebook struct {
	names   []string
	records map[string]record
}

func newPhonebook() *phonebook {
	return &phonebook{records: make(map[string]record)}
}

func (b *phonebook) has(name string) bool {
	_, ok := b.records[name]
	return ok
}

func (b *phonebook) put(name string, r record) {
	if !b.has(name) {
		b.names = append(b.names, name)
	}
	b.records[name] = r
}

func (b *phonebook) remove(name string) (record, bool) {
	r, ok := b.records[name]
	if !ok {
		return record{}, false
	}

	delete(b.records, name)
	for i, n := range b.names {
		if n == name {
			b.names = append(b.names[:i], b.names[i+1:]...)
			break
		}
	}
	return r, true
}

func (b *phonebook) contacts() []entities.Contact {
	contacts := make([]entities.Contact, 0, len(b.names))
	for _, name := range b.names {
		r := b.records[name]
		contacts = append(contacts, entities.Contact{Name: name, Phone: r.Phone, Alias: r.Alias})
	}
	return contacts
}

// decodePhonebook parses a store file. ok is false when the data is not a
// JSON object, in which case the returned phonebook is empty.
//
// Values that are plain strings or numbers are the legacy name -> phone shape
// and are read as a record with an empty alias. Null, boolean and array
// values are dropped, as are entries without a phone.
func decodePhonebook(data []byte) (book *phonebook, ok bool) {
	book = newPhonebook()
	if !gjson.ValidBytes(data) {
		return book, false
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return book, false
	}

	root.ForEach(func(key, value gjson.Result) bool {
		var r record
		switch {
		case value.IsObject():
			r = record{
				Phone: value.Get("phone").String(),
				Alias: value.Get("alias").String(),
			}
		case value.Type == gjson.String:
			r = record{Phone: value.String()}
		case value.Type == gjson.Number:
			// Raw keeps the digits as written.
			r = record{Phone: value.Raw}
		}
		if r.Phone != "" {
			book.put(key.String(), r)
		}
		return true
	})

	return book, true
}

// encode renders the phonebook in the current shape, two-space indented,
// with non-ASCII text left as is.
func (b *phonebook) encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, name := range b.names {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := marshalJSON(name)
		if err != nil {
			return nil, fmt.Errorf("encode name %q: %w", name, err)
		}
		value, err := marshalJSON(b.records[name])
		if err != nil {
			return nil, fmt.Errorf("encode contact %q: %w", name, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return pretty.PrettyOptions(buf.Bytes(), &pretty.Options{Width: 80, Indent: "  "}), nil
}

func marshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
