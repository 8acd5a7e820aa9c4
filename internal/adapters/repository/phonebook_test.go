package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePhonebook_Shapes(t *testing.T) {
	book, ok := decodePhonebook([]byte(`{
		"Alice": "12345",
		"Bob": {"phone": "555-0100", "alias": "work"},
		"Num": 8675309,
		"Decimal": 12.50,
		"Big": 12345678901234567890,
		"Gone": null,
		"List": ["1"],
		"NoPhone": {"alias": "x"},
		"EmptyPhone": {"phone": "", "alias": "y"},
		"Blank": ""
	}`))
	require.True(t, ok)

	assert.Equal(t, []string{"Alice", "Bob", "Num", "Decimal", "Big"}, book.names)
	assert.Equal(t, record{Phone: "12345"}, book.records["Alice"])
	assert.Equal(t, record{Phone: "555-0100", Alias: "work"}, book.records["Bob"])
	assert.Equal(t, record{Phone: "8675309"}, book.records["Num"])
	assert.Equal(t, record{Phone: "12.50"}, book.records["Decimal"])
	assert.Equal(t, record{Phone: "12345678901234567890"}, book.records["Big"])
	assert.False(t, book.has("NoPhone"))
	assert.False(t, book.has("EmptyPhone"))
}

func TestDecodePhonebook_Invalid(t *testing.T) {
	for _, input := range []string{``, `{`, `"text"`, `42`, `[]`} {
		book, ok := decodePhonebook([]byte(input))
		assert.False(t, ok, input)
		assert.Empty(t, book.contacts(), input)
	}
}

func TestPhonebookEncode(t *testing.T) {
	book := newPhonebook()
	book.put("Zoë", record{Phone: "1", Alias: "<home>"})
	book.put("Adam", record{Phone: "2"})

	data, err := book.encode()
	require.NoError(t, err)

	expected := "{\n" +
		"  \"Zoë\": {\n    \"phone\": \"1\",\n    \"alias\": \"<home>\"\n  },\n" +
		"  \"Adam\": {\n    \"phone\": \"2\",\n    \"alias\": \"\"\n  }\n" +
		"}\n"
	assert.Equal(t, expected, string(data))

	decoded, ok := decodePhonebook(data)
	require.True(t, ok)
	assert.Equal(t, book.contacts(), decoded.contacts())
}

func TestPhonebookRemoveKeepsOrder(t *testing.T) {
	book := newPhonebook()
	book.put("a", record{Phone: "1"})
	book.put("b", record{Phone: "2"})
	book.put("c", record{Phone: "3"})

	r, ok := book.remove("b")
	require.True(t, ok)
	assert.Equal(t, "2", r.Phone)
	assert.Equal(t, []string{"a", "c"}, book.names)

	_, ok = book.remove("b")
	assert.False(t, ok)
}
