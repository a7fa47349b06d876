package config

import (
	"github.com/readnoevil/rnoe/internal/errors"
	"github.com/readnoevil/rnoe/internal/markup"
)

// DefaultThreshold is the protection threshold applied when neither the
// document nor the account sets one.
const DefaultThreshold = 0.5

// DefaultDocument builds a fresh configuration document with the given
// global protection threshold and no accounts.
func DefaultDocument(threshold float64) markup.Value {
	protection := markup.NewMapping()
	protection.Set("threshold", markup.FloatValue(threshold))

	doc := markup.NewMapping()
	doc.Set("protection", markup.MappingValue(protection))
	doc.Set("accounts", markup.SequenceValue())
	return markup.MappingValue(doc)
}

// Accounts returns the account mappings of the document in persisted
// order. An absent or null accounts entry reads as empty: the format
// cannot distinguish an empty sequence from an absent value, so the
// caller-side default lives here.
func Accounts(doc markup.Value) []*markup.Mapping {
	seq := accountsSequence(doc)
	accounts := make([]*markup.Mapping, 0, len(seq))
	for _, item := range seq {
		if item.Kind() == markup.KindMapping {
			accounts = append(accounts, item.Mapping())
		}
	}
	return accounts
}

func accountsSequence(doc markup.Value) []markup.Value {
	if doc.Kind() != markup.KindMapping {
		return nil
	}
	v, ok := doc.Mapping().Get("accounts")
	if !ok || v.Kind() != markup.KindSequence {
		return nil
	}
	return v.Sequence()
}

// AccountIDs returns the ids of all accounts in persisted order.
func AccountIDs(doc markup.Value) []string {
	accounts := Accounts(doc)
	ids := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		if id, ok := acc.Get("id"); ok && id.Kind() == markup.KindString {
			ids = append(ids, id.Text())
		}
	}
	return ids
}

// FindAccount returns the account mapping with the given id.
func FindAccount(doc markup.Value, id string) (*markup.Mapping, bool) {
	for _, acc := range Accounts(doc) {
		if v, ok := acc.Get("id"); ok && v.Kind() == markup.KindString && v.Text() == id {
			return acc, true
		}
	}
	return nil, false
}

// AppendAccount appends an account to the document, keeping existing
// order and normalizing a null accounts entry to a sequence.
func AppendAccount(doc markup.Value, account *markup.Mapping) {
	seq := accountsSequence(doc)
	seq = append(seq, markup.MappingValue(account))
	doc.Mapping().Set("accounts", markup.SequenceValue(seq...))
}

// RemoveAccount removes the account with the given id, preserving the
// order of the remaining accounts. Removing an unknown id is an
// account-not-found error.
func RemoveAccount(doc markup.Value, id string) error {
	seq := accountsSequence(doc)
	kept := make([]markup.Value, 0, len(seq))
	removed := false
	for _, item := range seq {
		if item.Kind() == markup.KindMapping {
			if v, ok := item.Mapping().Get("id"); ok && v.Text() == id {
				removed = true
				continue
			}
		}
		kept = append(kept, item)
	}
	if !removed {
		return errors.NewValidationError(
			errors.ErrCodeAccountNotFound,
			"no account with id '"+id+"'",
		)
	}
	doc.Mapping().Set("accounts", markup.SequenceValue(kept...))
	return nil
}

// Threshold returns the document-level protection threshold, defaulting
// when absent or mistyped.
func Threshold(doc markup.Value) float64 {
	if doc.Kind() != markup.KindMapping {
		return DefaultThreshold
	}
	return thresholdOf(doc.Mapping(), DefaultThreshold)
}

// ThresholdFor resolves the effective threshold for one account: the
// account's own protection.threshold when present, else the document's.
func ThresholdFor(doc markup.Value, account *markup.Mapping) float64 {
	return thresholdOf(account, Threshold(doc))
}

func thresholdOf(m *markup.Mapping, fallback float64) float64 {
	p, ok := m.Get("protection")
	if !ok || p.Kind() != markup.KindMapping {
		return fallback
	}
	t, ok := p.Mapping().Get("threshold")
	if !ok {
		return fallback
	}
	switch t.Kind() {
	case markup.KindFloat, markup.KindInt:
		return t.Float()
	default:
		return fallback
	}
}

// Scalar field accessors used by the mail layer. Missing or mistyped
// fields return the fallback; the codec does no schema validation.

// TextField returns a string field of an account mapping.
func TextField(m *markup.Mapping, key, fallback string) string {
	if v, ok := m.Get(key); ok && v.Kind() == markup.KindString {
		return v.Text()
	}
	return fallback
}

// IntField returns an int field of an account mapping.
func IntField(m *markup.Mapping, key string, fallback int64) int64 {
	if v, ok := m.Get(key); ok && v.Kind() == markup.KindInt {
		return v.Int()
	}
	return fallback
}

// BoolField returns a bool field of an account mapping.
func BoolField(m *markup.Mapping, key string, fallback bool) bool {
	if v, ok := m.Get(key); ok && v.Kind() == markup.KindBool {
		return v.Bool()
	}
	return fallback
}
