package identity

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/ghostproof/internal/common"
	"github.com/dmitrijs2005/ghostproof/internal/cryptox"
)

// ErrBadPassphrase is returned when the device key file cannot be unsealed
// with the supplied passphrase.
var ErrBadPassphrase = errors.New("invalid passphrase")

// PassphrasePrompt asks the user for the key-file passphrase. create is true
// when a new key file is being initialized (the prompt may ask twice). The
// returned slice is wiped by the backend after use.
type PassphrasePrompt func(create bool) ([]byte, error)

// DeviceKeyBackend authenticates with a local ed25519 key sealed on disk.
// The principal is derived from the public key, so it is stable across
// sessions on the same device. The unsealed key lives only in memory; a
// process restart always requires an interactive unlock.
type DeviceKeyBackend struct {
	keyFile string
	prompt  PassphrasePrompt

	mu   sync.Mutex
	priv ed25519.PrivateKey
}

func NewDeviceKeyBackend(keyFile string, prompt PassphrasePrompt) *DeviceKeyBackend {
	return &DeviceKeyBackend{keyFile: keyFile, prompt: prompt}
}

func (b *DeviceKeyBackend) Method() Method { return MethodDeviceKey }

// ProbeActiveSession reports whether the key is currently unlocked.
func (b *DeviceKeyBackend) ProbeActiveSession(ctx context.Context) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.priv != nil, nil
}

// sealedKeyFile is the on-disk representation of the device key.
type sealedKeyFile struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	SealedSeed []byte `json:"sealed_seed"`
}

// BeginInteractiveLogin unlocks the key file, creating it on first use. It
// returns common.ErrCancelled when the prompt is aborted and ErrBadPassphrase
// when the key file cannot be unsealed.
func (b *DeviceKeyBackend) BeginInteractiveLogin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrCancelled, err)
	}

	_, statErr := os.Stat(b.keyFile)
	create := errors.Is(statErr, os.ErrNotExist)

	passphrase, err := b.prompt(create)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrCancelled, err)
	}
	defer common.WipeByteArray(passphrase)

	var priv ed25519.PrivateKey
	if create {
		priv, err = b.createKeyFile(passphrase)
	} else {
		priv, err = b.unsealKeyFile(passphrase)
	}
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.priv = priv
	b.mu.Unlock()
	return nil
}

// EndSession wipes the unlocked key from memory. The sealed key file stays on
// disk so the same principal can log in again.
func (b *DeviceKeyBackend) EndSession(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.priv != nil {
		common.WipeByteArray(b.priv)
		b.priv = nil
	}
	return nil
}

// CurrentIdentity returns the unlocked identity, or nil while locked.
func (b *DeviceKeyBackend) CurrentIdentity() Identity {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.priv == nil {
		return nil
	}
	return &deviceIdentity{priv: b.priv, principal: principalFromPublicKey(b.priv.Public().(ed25519.PublicKey))}
}

func (b *DeviceKeyBackend) createKeyFile(passphrase []byte) (ed25519.PrivateKey, error) {
	seed := common.GenerateRandByteArray(ed25519.SeedSize)
	salt := common.GenerateRandByteArray(16)

	key := cryptox.DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	sealed, nonce, err := cryptox.Seal(seed, key)
	if err != nil {
		return nil, fmt.Errorf("failed to seal device key: %w", err)
	}

	data, err := json.Marshal(sealedKeyFile{Salt: salt, Nonce: nonce, SealedSeed: sealed})
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(b.keyFile, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write device key file: %w", err)
	}

	return ed25519.NewKeyFromSeed(seed), nil
}

func (b *DeviceKeyBackend) unsealKeyFile(passphrase []byte) (ed25519.PrivateKey, error) {
	data, err := os.ReadFile(b.keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read device key file: %w", err)
	}

	var sealed sealedKeyFile
	if err := json.Unmarshal(data, &sealed); err != nil {
		return nil, fmt.Errorf("corrupt device key file: %w", err)
	}

	key := cryptox.DeriveKey(passphrase, sealed.Salt)
	defer common.WipeByteArray(key)

	seed, err := cryptox.Open(sealed.SealedSeed, sealed.Nonce, key)
	if err != nil {
		return nil, ErrBadPassphrase
	}
	defer common.WipeByteArray(seed)

	return ed25519.NewKeyFromSeed(seed), nil
}

// principalFromPublicKey derives the stable device principal: "ghost-" plus
// the first 16 bytes of the public key digest in hex.
func principalFromPublicKey(pub ed25519.PublicKey) string {
	sum := sha256.Sum256(pub)
	return "ghost-" + hex.EncodeToString(sum[:16])
}

type deviceIdentity struct {
	priv      ed25519.PrivateKey
	principal string
}

func (d *deviceIdentity) Principal() string { return d.principal }

// Authorize signs "<method>\n<path>\n<date>" with the device key so the
// gateway can verify the request against the registered public key.
func (d *deviceIdentity) Authorize(r *http.Request) {
	date := time.Now().UTC().Format(time.RFC3339)
	sig := ed25519.Sign(d.priv, []byte(r.Method+"\n"+r.URL.Path+"\n"+date))

	r.Header.Set("X-Ghost-Principal", d.principal)
	r.Header.Set("X-Ghost-Date", date)
	r.Header.Set("X-Ghost-Signature", base64.StdEncoding.EncodeToString(sig))
}

var _ Backend = (*DeviceKeyBackend)(nil)
