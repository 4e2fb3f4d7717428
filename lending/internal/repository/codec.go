package repository

import (
	"fmt"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	jsoniter "github.com/json-iterator/go"
)

var diffJSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

// EncodeDiff splits a diff into the old and new value documents stored next to an audit entry.
func EncodeDiff(d model.Diff) (oldDoc, newDoc []byte, err error) {
	if oldDoc, err = encodeValues(d.OldValues()); err != nil {
		return nil, nil, err
	}
	if newDoc, err = encodeValues(d.NewValues()); err != nil {
		return nil, nil, err
	}
	return oldDoc, newDoc, nil
}

func encodeValues(m map[string]*model.FieldValue) ([]byte, error) {
	doc := make(map[string]any, len(m))
	for field, v := range m {
		if v.Null {
			doc[field] = nil
			continue
		}
		doc[field] = v.Text
	}
	b, err := diffJSON.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode audit values: %w", err)
	}
	return b, nil
}

func DecodeDiff(oldDoc, newDoc []byte) (model.Diff, error) {
	before, err := decodeValues(oldDoc)
	if err != nil {
		return nil, err
	}
	after, err := decodeValues(newDoc)
	if err != nil {
		return nil, err
	}
	return model.MergeDiff(before, after), nil
}

func decodeValues(doc []byte) (map[string]*model.FieldValue, error) {
	if len(doc) == 0 {
		return nil, nil
	}
	var raw map[string]any
	if err := diffJSON.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("decode audit values: %w", err)
	}
	out := make(map[string]*model.FieldValue, len(raw))
	for field, v := range raw {
		switch tv := v.(type) {
		case nil:
			out[field] = &model.FieldValue{Null: true}
		case string:
			out[field] = model.Text(tv)
		default:
			out[field] = model.Text(fmt.Sprint(tv))
		}
	}
	return out, nil
}
