// Package v1 defines the versioned merge job file surface.
package v1

// MergeJob is the top-level document of a merge job file.
type MergeJob struct {
	Kind     string       `yaml:"kind" json:"kind" validate:"required,eq=MergeJob"`
	Metadata Metadata     `yaml:"metadata" json:"metadata"`
	Spec     MergeJobSpec `yaml:"spec" json:"spec" validate:"required"`
}

// Metadata names a job for logs and summaries.
type Metadata struct {
	Name string `yaml:"name" json:"name" validate:"required"`
}

// MergeJobSpec configures one merge operation.
type MergeJobSpec struct {
	// Inputs is the ordered list of archives to merge. Order matters: on
	// a member-path collision the later archive wins.
	Inputs []string `yaml:"inputs" json:"inputs" validate:"required,min=1,dive,required"`

	// Output is the path of the merged archive to create.
	Output string `yaml:"output" json:"output" validate:"required"`

	// Format selects the output container (default: zip).
	Format string `yaml:"format,omitempty" json:"format,omitempty" validate:"omitempty,oneof=zip tar tar.gz tar.bz2 tar.zst"`

	// Compression selects the compression kind for formats that use one.
	Compression string `yaml:"compression,omitempty" json:"compression,omitempty" validate:"omitempty,oneof=deflate gzip bzip2 zstd none"`

	// Level is the deflate level for zip output (1-9, default 6).
	Level int `yaml:"level,omitempty" json:"level,omitempty" validate:"omitempty,min=1,max=9"`

	// Overwrite allows replacing an existing output file.
	Overwrite bool `yaml:"overwrite,omitempty" json:"overwrite,omitempty"`
}
