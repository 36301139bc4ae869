package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/snapscope/internal/model"
)

// ApprovalStore persists the list of snapshots a reviewer approved for
// baseline regeneration, so the review and update commands can run as
// separate CI steps.
type ApprovalStore interface {
	SaveApproved(path m.Path, snapshots []m.FailedSnapshot) error
	LoadApproved(path m.Path) ([]m.FailedSnapshot, error)
}

// approvalDocVersion guards the on-disk format.
const approvalDocVersion = 1

type approvalDoc struct {
	Version  int              `yaml:"version"`
	Approved []m.FailedSnapshot `yaml:"approved"`
}

// YAMLApprovalStore stores the approved list as a small YAML document.
type YAMLApprovalStore struct{}

// NewYAMLApprovalStore constructs a YAMLApprovalStore.
func NewYAMLApprovalStore() *YAMLApprovalStore {
	return &YAMLApprovalStore{}
}

// SaveApproved writes the approved snapshot list to path.
func (s *YAMLApprovalStore) SaveApproved(path m.Path, snapshots []m.FailedSnapshot) error {
	doc := approvalDoc{
		Version:  approvalDocVersion,
		Approved: snapshots,
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding approved list: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o644); err != nil {
		return fmt.Errorf("writing approved list: %w", err)
	}

	return nil
}

// LoadApproved reads an approved snapshot list from path.
func (s *YAMLApprovalStore) LoadApproved(path m.Path) ([]m.FailedSnapshot, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("reading approved list: %w", err)
	}

	var doc approvalDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding approved list: %w", err)
	}

	if doc.Version != approvalDocVersion {
		return nil, fmt.Errorf("unsupported approved list version %d", doc.Version)
	}

	return doc.Approved, nil
}
