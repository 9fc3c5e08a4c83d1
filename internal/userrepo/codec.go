// Package userrepo holds the pieces shared by the user store backends: the
// JSON document codec used by the blob backends and a metrics decorator.
package userrepo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/haguru/sakura/internal/models"
)

// EmptyDocument is what a freshly initialized blob store holds.
var EmptyDocument = []byte("[]")

var errEmptyDocument = errors.New("document is empty")

// DecodeUsers parses a stored JSON array of users. Malformed or empty input is
// an error; a stored null decodes as an empty collection.
func DecodeUsers(data []byte) ([]models.User, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%s: %w", ErrDecodeUsers, errEmptyDocument)
	}
	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDecodeUsers, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// EncodeUsers renders the collection as indented JSON.
func EncodeUsers(users []models.User) ([]byte, error) {
	if users == nil {
		users = []models.User{}
	}
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrEncodeUsers, err)
	}
	return data, nil
}
