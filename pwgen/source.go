package pwgen

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/big"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/chacha20"
)

var errBadBound = errors.New("random bound must be greater than zero")

// Source supplies uniformly distributed integers to a Generator.
type Source interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) (int, error)
}

// CryptoSource draws from crypto/rand. It is safe for concurrent use and is
// the default Source.
type CryptoSource struct{}

// Intn implements Source.
func (CryptoSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, errBadBound
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, errors.Wrap(err, "reading crypto/rand")
	}
	return int(v.Int64()), nil
}

// ChaChaSource is a deterministic Source backed by a ChaCha20 keystream. Two
// sources created from the same seed produce the same sequence, which makes
// generated passwords reproducible in tests.
type ChaChaSource struct {
	mu     sync.Mutex
	cipher *chacha20.Cipher
	buf    [8]byte
}

// NewChaChaSource creates a ChaChaSource keyed by the SHA-256 of seed.
func NewChaChaSource(seed []byte) (*ChaChaSource, error) {
	key := sha256.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, errors.Wrap(err, "creating chacha20 stream")
	}
	return &ChaChaSource{cipher: c}, nil
}

// Intn implements Source. Values are rejection-sampled so every result in
// [0, n) is equally likely.
func (s *ChaChaSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, errBadBound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	bound := uint64(n)
	limit := math.MaxUint64 - math.MaxUint64%bound
	for {
		v := s.next()
		if v < limit {
			return int(v % bound), nil
		}
	}
}

func (s *ChaChaSource) next() uint64 {
	for i := range s.buf {
		s.buf[i] = 0
	}
	s.cipher.XORKeyStream(s.buf[:], s.buf[:])
	return binary.LittleEndian.Uint64(s.buf[:])
}
