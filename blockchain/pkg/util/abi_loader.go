package util

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed abi/*.json
var embeddedABIs embed.FS

const (
	StakingRewardsABI = "StakingRewards"
	PairABI           = "Pair"
)

// HardhatArtifact represents the structure of a Hardhat compilation artifact
type HardhatArtifact struct {
	Format       string          `json:"_format"`
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
}

// LoadEmbeddedABI loads one of the ABIs bundled with the binary (StakingRewardsABI, PairABI)
func LoadEmbeddedABI(name string) (*abi.ABI, error) {
	data, err := embeddedABIs.ReadFile("abi/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("unknown embedded ABI %q: %w", name, err)
	}
	return parseABI(data)
}

// LoadABI attempts to load an ABI from either a Hardhat artifact or plain JSON
func LoadABI(filePath string) (*abi.ABI, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return parseABI(data)
}

// ResolveABI prefers an explicit file path and falls back to the embedded ABI
func ResolveABI(filePath string, embeddedName string) (*abi.ABI, error) {
	if filePath != "" {
		return LoadABI(filePath)
	}
	return LoadEmbeddedABI(embeddedName)
}

func parseABI(data []byte) (*abi.ABI, error) {
	// Try to parse as Hardhat artifact first
	var artifact HardhatArtifact
	if err := json.Unmarshal(data, &artifact); err == nil && len(artifact.ABI) > 0 {
		parsedABI, err := abi.JSON(bytes.NewReader(artifact.ABI))
		if err != nil {
			return nil, fmt.Errorf("failed to parse ABI from artifact: %w", err)
		}
		return &parsedABI, nil
	}

	// Try to parse as plain ABI JSON
	parsedABI, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse as plain ABI JSON: %w", err)
	}

	return &parsedABI, nil
}
