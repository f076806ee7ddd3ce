package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "wallet:summary:u-1", WalletSummaryKey("u-1"))
	assert.Equal(t, "listing:id:p-1", ListingKey("p-1"))
	assert.Equal(t, "profile:id:42", GenerateKey(EntityProfile, KeyID, 42))
}

func TestParseKey(t *testing.T) {
	assert.Equal(t, map[string]string{
		"entity": "wallet",
		"type":   "summary",
		"value":  "a:b",
	}, ParseKey("wallet:summary:a:b"))
	assert.Nil(t, ParseKey("wallet"))
}
