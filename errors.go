package epubtoc

import "errors"

// Sentinel errors returned by the epubtoc package.
var (
	// ErrDRMProtected indicates the ePub file is protected by DRM
	// (e.g., Adobe ADEPT, Apple FairPlay, Readium LCP) and cannot be read.
	ErrDRMProtected = errors.New("epubtoc: file is DRM protected")

	// ErrInvalidEPub indicates the file is not a valid ePub
	// (e.g., missing container.xml and no .opf file found).
	ErrInvalidEPub = errors.New("epubtoc: invalid ePub file")

	// ErrFileNotFound indicates the requested file does not exist
	// in the ePub archive.
	ErrFileNotFound = errors.New("epubtoc: file not found in archive")

	// ErrNavNotFound indicates the package has no navigation item with
	// the requested manifest id, or the item is empty.
	ErrNavNotFound = errors.New("epubtoc: navigation document not found")
)
