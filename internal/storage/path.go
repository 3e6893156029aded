package storage

import (
	"path"

	"github.com/google/uuid"
)

// vehicleImageDir is the relative directory for vehicle images.
const vehicleImageDir = "uploads/vehicle"

// VehicleImagePath generates a fresh storage path for a vehicle image.
// The original filename contributes only its extension; the name itself
// is replaced with a random UUID so uploads can never collide or leak
// the client's filename.
//
// Example:
//
//	original: "my car.JPG"
//	result:   "uploads/vehicle/3f2a....JPG" (extension kept as given)
func VehicleImagePath(originalFilename string) string {
	return vehicleImagePath(uuid.NewString(), originalFilename)
}

// vehicleImagePath builds the path from an explicit ID. Split out so the
// generated name is testable.
func vehicleImagePath(id, originalFilename string) string {
	ext := path.Ext(originalFilename)
	return path.Join(vehicleImageDir, id+ext)
}
