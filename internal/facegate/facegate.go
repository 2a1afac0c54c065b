package facegate

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Verifier validates the single-use face-verification tokens issued by the
// liveness provider. A token binds to an exact (user, device, operation)
// triple; its nonce carries the issue timestamp; each token may be consumed
// once. Consumption state lives in the shared lock store so replays are
// rejected across processes.
//
// Token wire format: "{nonce}|{user_id}|{device_id}|{op}~{hmac_sha256_hex}"
// with nonce "{opaque}.{epoch_seconds}".

var (
	ErrBadToken        = errors.New("malformed face token")
	ErrBadSignature    = errors.New("face token signature mismatch")
	ErrContextMismatch = errors.New("face token bound to different context")
	ErrTokenExpired    = errors.New("face token expired")
	ErrTokenReplay     = errors.New("face token already used")
)

type TokenStore interface {
	PutIfAbsent(ctx context.Context, key string, now, expiresAt time.Time) (bool, error)
}

type Verifier struct {
	secret []byte
	ttl    time.Duration
	store  TokenStore
	now    func() time.Time
}

func New(secret string, ttl time.Duration, store TokenStore) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		ttl:    ttl,
		store:  store,
		now:    time.Now,
	}
}

func (v *Verifier) sign(payload string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks signature, binding, freshness and single-use. Any failure
// means the calling operation must abort with no side effect.
func (v *Verifier) Verify(ctx context.Context, token string, userID int, deviceID, op string) error {
	payload, sig, found := strings.Cut(token, "~")
	if !found {
		return ErrBadToken
	}
	parts := strings.SplitN(payload, "|", 4)
	if len(parts) != 4 {
		return ErrBadToken
	}
	nonce, tokenUser, tokenDevice, tokenOp := parts[0], parts[1], parts[2], parts[3]

	if !hmac.Equal([]byte(v.sign(payload)), []byte(sig)) {
		return ErrBadSignature
	}

	if tokenUser != strconv.Itoa(userID) || tokenDevice != deviceID || tokenOp != op {
		return ErrContextMismatch
	}

	_, tsStr, found := strings.Cut(nonce, ".")
	if !found {
		return ErrBadToken
	}
	ts, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return ErrBadToken
	}

	now := v.now()
	issued := time.Unix(ts, 0)
	if now.Sub(issued) > v.ttl {
		return ErrTokenExpired
	}

	sum := sha256.Sum256([]byte(token))
	used, err := v.store.PutIfAbsent(ctx, "face:used:"+hex.EncodeToString(sum[:16]), now, issued.Add(v.ttl))
	if err != nil {
		return err
	}
	if !used {
		return ErrTokenReplay
	}
	return nil
}

// BuildToken mints a token the way the liveness provider does. Exported for
// provisioning scripts and tests.
func BuildToken(secret string, nonce string, userID int, deviceID, op string) string {
	payload := fmt.Sprintf("%s|%d|%s|%s", nonce, userID, deviceID, op)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return payload + "~" + hex.EncodeToString(mac.Sum(nil))
}
