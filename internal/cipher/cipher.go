package cipher

import (
	"bytes"
	"crypto/aes"
	stdcipher "crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

const (
	// KeySize - длина ключа AES-256
	KeySize = 32
	// IVSize - длина вектора инициализации
	IVSize = aes.BlockSize

	keyPadByte = '0'
	quote      = '"'
)

// ErrMalformedEnvelope - конверт не удалось разобрать или расшифровать
var ErrMalformedEnvelope = errors.New("cipher: malformed envelope")

// Cipher шифрует тела запросов и ответов общим симметричным ключом
type Cipher struct {
	key  []byte
	rand io.Reader
}

// New создает Cipher; секрет дополняется символом '0' или обрезается до 32 байт
func New(secret string) *Cipher {
	return &Cipher{
		key:  deriveKey(secret),
		rand: rand.Reader,
	}
}

func deriveKey(secret string) []byte {
	key := []byte(secret)
	if len(key) > KeySize {
		return key[:KeySize]
	}
	return append(key, bytes.Repeat([]byte{keyPadByte}, KeySize-len(key))...)
}

// Encrypt возвращает конверт вида "base64(IV || ciphertext)" в кавычках.
// Пустой вход возвращается без изменений.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return plaintext, nil
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("cipher: could not create block: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	raw := make([]byte, IVSize+len(padded))
	iv := raw[:IVSize]
	if _, err := io.ReadFull(c.rand, iv); err != nil {
		return nil, fmt.Errorf("cipher: could not generate iv: %w", err)
	}
	stdcipher.NewCBCEncrypter(block, iv).CryptBlocks(raw[IVSize:], padded)

	envelope := make([]byte, 0, base64.StdEncoding.EncodedLen(len(raw))+2)
	envelope = append(envelope, quote)
	envelope = base64.StdEncoding.AppendEncode(envelope, raw)
	envelope = append(envelope, quote)
	return envelope, nil
}

// Decrypt разбирает конверт и возвращает исходный текст.
// При любой ошибке возвращается исходный вход без изменений вместе с ошибкой:
// вызывающий код должен считать значение непригодным и залогировать ошибку.
// TODO: убрать возврат исходного текста при ошибке, когда клиенты перестанут на это полагаться
func (c *Cipher) Decrypt(envelope []byte) ([]byte, error) {
	if len(envelope) == 0 {
		return envelope, nil
	}

	plaintext, err := c.decrypt(envelope)
	if err != nil {
		return envelope, err
	}
	return plaintext, nil
}

func (c *Cipher) decrypt(envelope []byte) ([]byte, error) {
	trimmed := bytes.Trim(bytes.TrimSpace(envelope), string(quote))

	raw := make([]byte, base64.StdEncoding.DecodedLen(len(trimmed)))
	n, err := base64.StdEncoding.Decode(raw, trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrMalformedEnvelope, err)
	}
	raw = raw[:n]

	if len(raw) < IVSize+aes.BlockSize || (len(raw)-IVSize)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: invalid length %d", ErrMalformedEnvelope, len(raw))
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("cipher: could not create block: %w", err)
	}

	iv := raw[:IVSize]
	body := make([]byte, len(raw)-IVSize)
	stdcipher.NewCBCDecrypter(block, iv).CryptBlocks(body, raw[IVSize:])

	return pkcs7Unpad(body, aes.BlockSize)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data), len(data)+padLen)
	copy(padded, data)
	return append(padded, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: bad padding", ErrMalformedEnvelope)
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, fmt.Errorf("%w: bad padding", ErrMalformedEnvelope)
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("%w: bad padding", ErrMalformedEnvelope)
		}
	}
	return data[:len(data)-padLen], nil
}
