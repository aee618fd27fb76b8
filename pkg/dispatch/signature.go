package dispatch

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Signature headers attached to signed dispatch requests.
const (
	HeaderSignature = "X-Alzent-Signature"
	HeaderTimestamp = "X-Alzent-Timestamp"
	HeaderRequestID = "X-Alzent-Request-ID"
)

// Signature authenticates a request body with HMAC-SHA256 over "<unix>.<body>".
type Signature struct {
	Value     string
	Timestamp int64
	ID        string
}

// Apply sets the signature headers on h.
func (s Signature) Apply(h http.Header) {
	h.Set(HeaderSignature, s.Value)
	h.Set(HeaderTimestamp, strconv.FormatInt(s.Timestamp, 10))
	h.Set(HeaderRequestID, s.ID)
}

// Sign computes the signature of body at time now.
func Sign(secret string, body []byte, now time.Time) (Signature, error) {
	if secret == "" {
		return Signature{}, fmt.Errorf("%w: secret is required", ErrInvalidSignature)
	}
	if len(body) == 0 {
		return Signature{}, fmt.Errorf("%w: body is empty", ErrInvalidPayload)
	}

	ts := now.Unix()
	return Signature{
		Value:     mac(secret, ts, body),
		Timestamp: ts,
		ID:        uuid.NewString(),
	}, nil
}

// SignatureFromHeader reads the signature headers from h.
func SignatureFromHeader(h http.Header) (Signature, error) {
	sig := Signature{Value: h.Get(HeaderSignature), ID: h.Get(HeaderRequestID)}
	if sig.Value == "" {
		return Signature{}, fmt.Errorf("%w: missing %s", ErrInvalidSignature, HeaderSignature)
	}
	ts, err := strconv.ParseInt(h.Get(HeaderTimestamp), 10, 64)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: bad %s", ErrInvalidSignature, HeaderTimestamp)
	}
	sig.Timestamp = ts
	return sig, nil
}

// Verify checks sig against body. A positive maxAge rejects signatures older
// than maxAge or more than a minute in the future.
func Verify(secret string, body []byte, sig Signature, maxAge time.Duration, now time.Time) error {
	if secret == "" {
		return fmt.Errorf("%w: secret is required", ErrInvalidSignature)
	}
	if maxAge > 0 {
		age := now.Sub(time.Unix(sig.Timestamp, 0))
		if age > maxAge {
			return fmt.Errorf("%w: signature expired", ErrInvalidSignature)
		}
		if age < -time.Minute {
			return fmt.Errorf("%w: signature from the future", ErrInvalidSignature)
		}
	}
	if !hmac.Equal([]byte(mac(secret, sig.Timestamp, body)), []byte(sig.Value)) {
		return fmt.Errorf("%w: mismatch", ErrInvalidSignature)
	}
	return nil
}

func mac(secret string, ts int64, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(h, "%d.", ts)
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
