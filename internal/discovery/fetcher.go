// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package discovery

import (
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// documentPath is where the service publishes its discovery document.
const documentPath = "/.well-known/passgate.json"

// signatureHeader carries the base64 RSA-SHA256 signature of the body.
const signatureHeader = "X-Discovery-Signature"

// signingKeyPEM is the public key used to verify signed documents. It is
// empty in development builds and injected with -ldflags at release; while
// empty, signed and unsigned documents are both accepted without
// verification.
var signingKeyPEM = ""

// fetch retrieves the discovery document from the service.
func fetch(ctx context.Context, baseURL string, timeout time.Duration) (*Document, error) {
	client := &http.Client{Timeout: timeout}

	url := strings.TrimRight(baseURL, "/") + documentPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "passgate-cli")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch discovery document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if sig := resp.Header.Get(signatureHeader); sig != "" && signingKeyPEM != "" {
		if err := verifySignature(body, sig); err != nil {
			return nil, fmt.Errorf("signature verification failed: %w", err)
		}
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse discovery document: %w", err)
	}
	if doc.Version == 0 {
		return nil, fmt.Errorf("invalid discovery document: missing version field")
	}

	return &doc, nil
}

// verifySignature validates the RSA-SHA256 signature of the document body.
func verifySignature(body []byte, signatureB64 string) error {
	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}

	block, _ := pem.Decode([]byte(signingKeyPEM))
	if block == nil {
		return fmt.Errorf("failed to parse PEM block")
	}
	pubKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return fmt.Errorf("parse public key: %w", err)
	}
	rsaPubKey, ok := pubKey.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("not an RSA public key")
	}

	hash := sha256.Sum256(body)
	if err := rsa.VerifyPKCS1v15(rsaPubKey, crypto.SHA256, hash[:], sig); err != nil {
		return fmt.Errorf("signature mismatch: %w", err)
	}
	return nil
}
