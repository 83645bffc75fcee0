package config

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
)

var ErrUnknownDestination = errors.New("unknown export destination")

// DestinationRegistry reads export destinations from an INI file where each
// section is one profile:
//
//	[archive]
//	type   = s3
//	bucket = indicure-reports
//	prefix = exports/
//	region = ap-south-1
//
//	[local]
//	type = file
//	dir  = ./exports
type DestinationRegistry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetDestination(ctx context.Context, profile string) (domain.Destination, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewDestinationRegistry(path string) (DestinationRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load destinations: %w", err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

// NewDestinationRegistryFromBytes is NewDestinationRegistry for in-memory
// content.
func NewDestinationRegistryFromBytes(data []byte) (DestinationRegistry, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load destinations: %w", err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetDestination(_ context.Context, profile string) (domain.Destination, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil || len(section.Keys()) == 0 {
		return domain.Destination{}, fmt.Errorf("%w: %s", ErrUnknownDestination, profile)
	}

	dest := domain.Destination{
		Name:     profile,
		Type:     domain.DestinationType(section.Key("type").String()),
		Bucket:   section.Key("bucket").String(),
		Prefix:   section.Key("prefix").String(),
		Region:   section.Key("region").String(),
		Endpoint: section.Key("endpoint").String(),
		Dir:      section.Key("dir").String(),
	}

	switch dest.Type {
	case domain.DestinationTypeS3:
		if dest.Bucket == "" {
			return domain.Destination{}, fmt.Errorf("destination %s: bucket is required", profile)
		}
	case domain.DestinationTypeFile:
		if dest.Dir == "" {
			return domain.Destination{}, fmt.Errorf("destination %s: dir is required", profile)
		}
	default:
		return domain.Destination{}, fmt.Errorf("destination %s: unsupported type %q", profile, dest.Type)
	}
	return dest, nil
}
