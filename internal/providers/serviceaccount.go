// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package providers

import (
	"encoding/pem"
	"fmt"
	"maps"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/rankpulse/internal/credentials"
	"github.com/tomtom215/rankpulse/internal/models"
)

// GoogleTokenURI is the OAuth2 token endpoint written into assembled keys.
const GoogleTokenURI = "https://oauth2.googleapis.com/token"

const serviceAccountField = "service_account_json"

// ServiceAccount is a Google service-account key read from tenant credentials.
type ServiceAccount struct {
	info map[string]any
}

// ResolveServiceAccount accepts either credential shape Google adapters
// support:
//
//   - a service_account_json object (a downloaded key file)
//   - flat client_email and private_key entries
//
// The object wins when both are present. Without an object the flat fields
// are required, so a tenant with neither gets an error naming client_email.
// Private keys pasted with literal "\n" sequences are repaired and must
// decode as PEM.
func ResolveServiceAccount(svc models.Service, creds credentials.Credentials) (*ServiceAccount, error) {
	objReq := credentials.Requirement{
		Service: svc,
		Fields:  []credentials.Field{{Name: serviceAccountField, Optional: true, Object: true}},
	}
	resolved, err := objReq.Resolve(creds)
	if err != nil {
		return nil, err
	}
	if resolved.Has(serviceAccountField) {
		return serviceAccountFromObject(svc, resolved.Object(serviceAccountField))
	}
	return serviceAccountFromFields(svc, creds)
}

func serviceAccountFromFields(svc models.Service, creds credentials.Credentials) (*ServiceAccount, error) {
	req := credentials.Requirement{
		Service: svc,
		Fields:  []credentials.Field{{Name: "client_email"}, {Name: "private_key"}},
	}
	resolved, err := req.Resolve(creds)
	if err != nil {
		return nil, err
	}

	key := RepairPrivateKey(resolved.String("private_key"))
	if !isPEM(key) {
		return nil, &credentials.InvalidCredentialError{Service: svc, Field: "private_key", Reason: "not a PEM encoded key"}
	}

	return &ServiceAccount{info: map[string]any{
		"type":         "service_account",
		"client_email": resolved.String("client_email"),
		"private_key":  key,
		"token_uri":    GoogleTokenURI,
	}}, nil
}

func serviceAccountFromObject(svc models.Service, obj map[string]any) (*ServiceAccount, error) {
	invalid := func(format string, args ...any) error {
		return &credentials.InvalidCredentialError{Service: svc, Field: serviceAccountField, Reason: fmt.Sprintf(format, args...)}
	}

	info := maps.Clone(obj)

	if t, _ := info["type"].(string); t == "" {
		info["type"] = "service_account"
	} else if t != "service_account" {
		return nil, invalid("type is %q, expected service_account", t)
	}

	email, _ := info["client_email"].(string)
	if strings.TrimSpace(email) == "" {
		return nil, invalid("client_email is missing")
	}

	key, _ := info["private_key"].(string)
	if strings.TrimSpace(key) == "" {
		return nil, invalid("private_key is missing")
	}
	key = RepairPrivateKey(key)
	if !isPEM(key) {
		return nil, invalid("private_key is not a PEM encoded key")
	}
	info["private_key"] = key

	if uri, _ := info["token_uri"].(string); uri == "" {
		info["token_uri"] = GoogleTokenURI
	}
	return &ServiceAccount{info: info}, nil
}

// ClientEmail returns the service account's email address.
func (sa *ServiceAccount) ClientEmail() string {
	email, _ := sa.info["client_email"].(string)
	return email
}

// String returns a text entry of the key object, such as a site_url stored
// alongside the key. Missing or non-text entries return "".
func (sa *ServiceAccount) String(key string) string {
	s, _ := sa.info[key].(string)
	return strings.TrimSpace(s)
}

// JSON encodes the key file for option.WithCredentialsJSON.
func (sa *ServiceAccount) JSON() ([]byte, error) {
	raw, err := json.Marshal(sa.info)
	if err != nil {
		return nil, fmt.Errorf("failed to encode service account: %w", err)
	}
	return raw, nil
}

// RepairPrivateKey turns literal "\n" sequences, as produced by pasting a
// key into a single-line form field, back into newlines.
func RepairPrivateKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.ReplaceAll(key, `\r\n`, "\n")
	key = strings.ReplaceAll(key, `\n`, "\n")
	if !strings.HasSuffix(key, "\n") {
		key += "\n"
	}
	return key
}

func isPEM(key string) bool {
	block, _ := pem.Decode([]byte(key))
	return block != nil
}
