package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

// photoDirName is the subdirectory under the data dir for uploaded photos.
const photoDirName = "photos"

// maxPhotoSize limits uploaded photo size.
// 10MB covers any phone camera JPEG while bounding memory per request.
const maxPhotoSize = 10 * 1024 * 1024

// PhotoWarning describes a piece of personal metadata found in an
// uploaded photo. Warnings are logged server-side so operators can see
// what senders are unknowingly uploading; the photo itself is stored
// unmodified.
type PhotoWarning struct {
	// Tag is the EXIF tag name that triggered the warning.
	Tag string

	// Value is the formatted tag value.
	Value string

	// Note explains why the tag is a privacy concern.
	Note string
}

// InspectPhoto scans an uploaded photo for privacy-sensitive EXIF metadata.
// Photos without EXIF data, or in formats that don't carry it, produce no
// warnings. Extraction failures are treated as "no metadata" rather than
// errors because a corrupt EXIF block doesn't invalidate the upload.
//
// This checks for:
//   - GPS coordinates (reveals where the photo was taken)
//   - Device serial numbers (uniquely identifies the sender's camera)
//   - Author/copyright fields (identity disclosure)
//   - Software and host computer fields (device fingerprinting)
func InspectPhoto(data []byte) []PhotoWarning {
	warnings := make([]PhotoWarning, 0)

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return warnings
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return warnings
	}

	for _, entry := range entries {
		tagName := entry.TagName
		value := entry.Formatted

		switch tagName {
		case "GPSLatitude", "GPSLongitude", "GPSLatitudeRef", "GPSLongitudeRef":
			warnings = append(warnings, PhotoWarning{
				Tag:   tagName,
				Value: value,
				Note:  "photo contains GPS coordinates revealing where it was taken",
			})

		case "SerialNumber", "CameraSerialNumber", "BodySerialNumber", "LensSerialNumber":
			warnings = append(warnings, PhotoWarning{
				Tag:   tagName,
				Value: value,
				Note:  "photo contains a device serial number that uniquely identifies the camera",
			})

		case "Artist", "Author", "Copyright", "XPAuthor":
			warnings = append(warnings, PhotoWarning{
				Tag:   tagName,
				Value: value,
				Note:  "photo contains author or copyright information that could identify the sender",
			})

		case "Software", "ProcessingSoftware", "HostComputer":
			warnings = append(warnings, PhotoWarning{
				Tag:   tagName,
				Value: value,
				Note:  "photo contains software or host information that fingerprints the sender's device",
			})
		}
	}

	return warnings
}

// savePhoto stores an uploaded photo under the data directory and returns
// the resource path served back in photo_url.
// The stored name is derived from the tracking ID rather than the uploaded
// filename so a hostile filename can never escape the photo directory.
func savePhoto(dataDir, trackingID, filename string, data []byte) (string, error) {
	dir := filepath.Join(dataDir, photoDirName)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create photo directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic":
		// keep
	default:
		ext = ".jpg"
	}

	name := trackingID + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0600); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}

	return "/" + photoDirName + "/" + name, nil
}
