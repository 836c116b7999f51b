package types

// TerraformFile is one rendered file of a fabric's terraform directory.
type TerraformFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// TerraformFiles is the complete output of a fabric render, ordered by file name.
type TerraformFiles []TerraformFile

// Get returns the content of the named file and whether it was rendered.
func (f TerraformFiles) Get(name string) (string, bool) {
	for _, file := range f {
		if file.Name == name {
			return file.Content, true
		}
	}
	return "", false
}

type TerraformVariable struct {
	Name        string
	Description string
	Type        string
	Sensitive   bool
	Default     any
}
