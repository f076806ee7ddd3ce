package cache

import (
	"fmt"
	"strings"
)

type EntityType string

const (
	EntityProfile EntityType = "profile"
	EntityWallet  EntityType = "wallet"
	EntityListing EntityType = "listing"
)

type KeyType string

const (
	KeyID      KeyType = "id"
	KeySummary KeyType = "summary"
	KeyUser    KeyType = "user"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}

// ParseKey extracts components from a cache key
func ParseKey(key string) map[string]string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 3 {
		return nil
	}
	return map[string]string{
		"entity": parts[0],
		"type":   parts[1],
		"value":  parts[2],
	}
}

// WalletSummaryKey is the key of a user's cached wallet summary.
func WalletSummaryKey(userID string) string {
	return GenerateKey(EntityWallet, KeySummary, userID)
}

// ListingKey is the key of a cached active listing.
func ListingKey(propertyID string) string {
	return GenerateKey(EntityListing, KeyID, propertyID)
}
