package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"
	"sync/atomic"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/jdai-ca/atticus-privacy/internal/errors"
	"github.com/jdai-ca/atticus-privacy/internal/kv"
)

const (
	seedStorageKey      = "installation/signing-seed"
	publicKeyStorageKey = "installation/signing-public-key"

	// signingKeyInfo versions the HKDF derivation so the algorithm can change
	// without invalidating stored seeds.
	signingKeyInfo = "audit-entry-signing-v1"
)

// Signer owns the per-installation asymmetric keypair and signs and verifies
// content digests. Signing failures are reported as errors for the caller to
// degrade on, never to block on.
type Signer interface {
	// Sign produces a base64 signature over the digest string. Initializes
	// the keypair on first use.
	Sign(ctx context.Context, digest string) (string, error)

	// Verify checks a base64 signature over the digest against the
	// installation public key. Returns ErrSignatureInvalid on mismatch.
	Verify(ctx context.Context, digest, signature string) error

	// PublicKey returns the installation's public key, initializing the
	// keypair if needed.
	PublicKey(ctx context.Context) (ed25519.PublicKey, error)
}

// ErrSignatureInvalid indicates a signature did not verify against the
// installation public key.
var ErrSignatureInvalid = apperrors.New("signature invalid")

type keypair struct {
	private ed25519.PrivateKey
	public  ed25519.PublicKey
}

// kvSigner persists a 32-byte master seed in the key-value store and derives
// the Ed25519 signing key from it with HKDF-SHA256. The derivation mirrors
// the seed across restarts: the same installation always signs with the same
// key.
type kvSigner struct {
	store kv.Store

	// group collapses concurrent first-use initializations into a single
	// seed generation; keys caches the result for every later call.
	group singleflight.Group
	keys  atomic.Pointer[keypair]
}

// NewSigner creates a Signer backed by the given store. The keypair is not
// touched until the first Sign/Verify/PublicKey call.
func NewSigner(store kv.Store) Signer {
	return &kvSigner{store: store}
}

// initKeys loads the persisted seed or generates one on first use, then
// derives the signing keypair. Memoized: concurrent first callers share one
// initialization, later callers hit the cached keypair.
func (s *kvSigner) initKeys(ctx context.Context) (*keypair, error) {
	if kp := s.keys.Load(); kp != nil {
		return kp, nil
	}

	result, err, _ := s.group.Do("init", func() (any, error) {
		if kp := s.keys.Load(); kp != nil {
			return kp, nil
		}

		seed, err := s.loadOrGenerateSeed(ctx)
		if err != nil {
			return nil, err
		}

		private, err := deriveSigningKey(seed)
		if err != nil {
			return nil, err
		}

		kp := &keypair{
			private: private,
			public:  private.Public().(ed25519.PublicKey),
		}

		// Persist the public half alongside the seed so external tools can
		// verify exports without deriving.
		pubHex := hex.EncodeToString(kp.public)
		if err := s.store.Set(ctx, publicKeyStorageKey, []byte(pubHex)); err != nil {
			return nil, apperrors.Wrap(err, "failed to persist public key")
		}

		s.keys.Store(kp)
		return kp, nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrSigningUnavailable, err.Error())
	}
	return result.(*keypair), nil
}

// loadOrGenerateSeed returns the installation master seed, creating and
// persisting it on first use.
func (s *kvSigner) loadOrGenerateSeed(ctx context.Context) ([]byte, error) {
	data, err := s.store.Get(ctx, seedStorageKey)
	if err == nil {
		seed, decodeErr := hex.DecodeString(string(data))
		if decodeErr != nil || len(seed) != 32 {
			return nil, apperrors.New("stored signing seed is malformed")
		}
		return seed, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate signing seed")
	}
	if err := s.store.Set(ctx, seedStorageKey, []byte(hex.EncodeToString(seed))); err != nil {
		return nil, apperrors.Wrap(err, "failed to persist signing seed")
	}
	return seed, nil
}

// deriveSigningKey uses HKDF-SHA256 to derive the Ed25519 seed from the
// master seed. Separates signing key usage from any future derivation of the
// same master seed; the info string is versioned for algorithm changes.
func deriveSigningKey(masterSeed []byte) (ed25519.PrivateKey, error) {
	reader := hkdf.New(sha256.New, masterSeed, nil, []byte(signingKeyInfo))
	keySeed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(reader, keySeed); err != nil {
		return nil, apperrors.Wrap(err, "failed to derive signing key")
	}
	return ed25519.NewKeyFromSeed(keySeed), nil
}

func (s *kvSigner) Sign(ctx context.Context, digest string) (string, error) {
	kp, err := s.initKeys(ctx)
	if err != nil {
		return "", err
	}
	sig := ed25519.Sign(kp.private, []byte(digest))
	return base64.StdEncoding.EncodeToString(sig), nil
}

func (s *kvSigner) Verify(ctx context.Context, digest, signature string) error {
	kp, err := s.initKeys(ctx)
	if err != nil {
		return err
	}
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return ErrSignatureInvalid
	}
	if !ed25519.Verify(kp.public, []byte(digest), sig) {
		return ErrSignatureInvalid
	}
	return nil
}

func (s *kvSigner) PublicKey(ctx context.Context) (ed25519.PublicKey, error) {
	kp, err := s.initKeys(ctx)
	if err != nil {
		return nil, err
	}
	return kp.public, nil
}
