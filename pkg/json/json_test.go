package json

import (
	"bytes"
	"testing"
)

type item struct {
	ID      string  `json:"id"`
	Content *string `json:"content"`
	Likes   int64   `json:"likes"`
}

func TestNullContent(t *testing.T) {
	data, err := Marshal(&item{ID: "a"})
	if err != nil {
		t.Fatalf("Marshal err: %v", err)
	}
	if !bytes.Contains(data, []byte(`"content":null`)) {
		t.Errorf("nil content should encode as null, got %s", data)
	}

	var out item
	if err = Unmarshal([]byte(`{"id":"b","content":"hi","likes":3}`), &out); err != nil {
		t.Fatalf("Unmarshal err: %v", err)
	}
	if out.Content == nil || *out.Content != "hi" || out.Likes != 3 {
		t.Errorf("unexpected decode result %+v", out)
	}
}

func TestDecoder(t *testing.T) {
	var out item
	if err := NewDecoder(bytes.NewBufferString(`{"id":"c"}`)).Decode(&out); err != nil {
		t.Fatalf("Decode err: %v", err)
	}
	if out.ID != "c" || out.Content != nil {
		t.Errorf("unexpected decode result %+v", out)
	}
}
