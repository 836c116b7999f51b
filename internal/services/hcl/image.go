package hcl

import (
	"fmt"

	"github.com/bayware/bwctl/internal/types"
)

// ImageSuffix is the version token shared by every image name of a render pass.
func ImageSuffix(image types.ImageSettings) string {
	version := image.NormalisedImageVersion()
	if image.Channel == types.ImageChannelUnstable {
		return version + "-" + types.ImageChannelUnstable
	}
	return version
}

// OSQualifier is the image name segment selecting a non-baseline OS. Unknown OS names are
// used as given.
func OSQualifier(osType, baseline string) string {
	if osType == "" || osType == baseline {
		return ""
	}
	return osType + "-"
}

type imageStrategy interface {
	attribute() string
	reference(stem, qualifier, suffix string) string
}

// namePatternImage addresses images by a name prefix that the module resolves to the most
// recent matching image.
type namePatternImage struct {
	attr string
}

func (s namePatternImage) attribute() string { return s.attr }

func (s namePatternImage) reference(stem, qualifier, suffix string) string {
	return fmt.Sprintf("%s-%s%s*", stem, qualifier, suffix)
}

// freeFormImage addresses images by their exact name.
type freeFormImage struct {
	attr string
}

func (s freeFormImage) attribute() string { return s.attr }

func (s freeFormImage) reference(stem, qualifier, suffix string) string {
	return fmt.Sprintf("%s-%s%s", stem, qualifier, suffix)
}

// ImageReference returns the module argument name and value locating the machine image of
// a node for the provider.
func ImageReference(provider types.Provider, role types.Role, osType, baseline, suffix string) (string, string, error) {
	spec, err := specFor(provider)
	if err != nil {
		return "", "", err
	}

	return spec.image.attribute(), spec.image.reference(string(role), OSQualifier(osType, baseline), suffix), nil
}
