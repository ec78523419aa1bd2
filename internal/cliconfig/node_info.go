package cliconfig

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bft-labs/beanwire/pkg/configbean"
)

// Layout of a CometBFT-style node home, the sample settings' source of node
// identity.
const (
	DefaultConfigDir       = "config"
	DefaultGenesisJSONName = "genesis.json"
	DefaultNodeKeyName     = "node_key.json"
)

// LoadNodeInfo derives the identity settings of cfg from its node home:
// ChainID from genesis.json and NodeID from node_key.json, each only when not
// already set. A missing file leaves the value untouched; a file that exists
// but cannot be parsed is an error.
func LoadNodeInfo(cfg *Config) error {
	if cfg.NodeHome == "" {
		return nil
	}

	if cfg.ChainID == "" {
		path := rootify(filepath.Join(DefaultConfigDir, DefaultGenesisJSONName), cfg.NodeHome)
		if configbean.FileExists(path) {
			chainID, err := readChainID(path)
			if err != nil {
				return fmt.Errorf("read chain id: %w", err)
			}
			cfg.ChainID = chainID
		}
	}

	if cfg.NodeID == "" || cfg.NodeID == "default" {
		path := rootify(filepath.Join(DefaultConfigDir, DefaultNodeKeyName), cfg.NodeHome)
		if configbean.FileExists(path) {
			nodeID, err := readNodeID(path)
			if err != nil {
				return fmt.Errorf("read node id: %w", err)
			}
			cfg.NodeID = nodeID
		}
	}
	return nil
}

func readChainID(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var doc genesisDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return "", err
	}
	return doc.ChainID, nil
}

func readNodeID(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var nk nodeKey
	if err := json.Unmarshal(b, &nk); err != nil {
		return "", err
	}

	privKeyBytes, err := base64.StdEncoding.DecodeString(nk.PrivKey.Value)
	if err != nil {
		return "", fmt.Errorf("decode priv key: %w", err)
	}
	if len(privKeyBytes) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("invalid priv key length: %d", len(privKeyBytes))
	}

	privKey := ed25519.PrivateKey(privKeyBytes)
	pubKey := privKey.Public().(ed25519.PublicKey)

	// Address is the first 20 bytes of SHA256(PubKey)
	sha := sha256.Sum256(pubKey)
	return hex.EncodeToString(sha[:20]), nil
}

// rootify returns the absolute path if path is absolute,
// otherwise it joins nodeHome and path.
func rootify(path, nodeHome string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(nodeHome, path)
}

type genesisDoc struct {
	ChainID string `json:"chain_id"`
}

type nodeKey struct {
	PrivKey struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"priv_key"`
}
