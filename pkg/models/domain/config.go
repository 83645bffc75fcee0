package domain

import "fmt"

type DestinationType string

const (
	DestinationTypeS3   DestinationType = "s3"
	DestinationTypeFile DestinationType = "file"
)

// Destination is a named place exported documents are copied to.
type Destination struct {
	Name string
	Type DestinationType

	// s3
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string

	// file
	Dir string
}

func (d Destination) String() string {
	return fmt.Sprintf("%s:%s", d.Type, d.Name)
}
