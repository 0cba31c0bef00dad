package objstore

import (
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/ncw/swift"
)

// Destination defines a valid transfer endpoint in object storage.
type Destination interface {
	// CreateFile begins the creation of an object. Write data to the
	// returned WriteCloser and then close it to commit the object.
	CreateFile(container string, objectName string, checkHash bool, hash string) (io.WriteCloser, error)
	// OpenFile opens an existing object for reading and returns its
	// length in bytes, or -1 when the length is unknown.
	OpenFile(container string, objectName string) (io.ReadCloser, int64, error)
	// FileNames returns the names of all objects already in the
	// given container.
	FileNames(container string) ([]string, error)
	AuthUrl() string
	AuthToken() string
}

// SwiftDestination implements the Destination interface for OpenStack Swift.
type SwiftDestination struct {
	SwiftConnection *swift.Connection
}

var _ Destination = (*SwiftDestination)(nil)

// CreateFile begins the process of creating an object in the destination. Write data to
// the returned WriteCloser and then close it to upload the data. Be sure to handle errors.
func (s *SwiftDestination) CreateFile(container, objectName string, checkHash bool, hash string) (io.WriteCloser, error) {
	return s.SwiftConnection.ObjectCreate(container, objectName, checkHash, hash, "", nil)
}

// OpenFile opens an object in the destination for reading.
func (s *SwiftDestination) OpenFile(container, objectName string) (io.ReadCloser, int64, error) {
	file, _, err := s.SwiftConnection.ObjectOpen(container, objectName, false, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("Failed to open object %s/%s: %w", container, objectName, err)
	}
	length, err := file.Length()
	if err != nil {
		length = -1
	}
	return file, length, nil
}

// FileNames returns a slice of the names of all objects already in the destination container.
func (s *SwiftDestination) FileNames(container string) ([]string, error) {
	return s.SwiftConnection.ObjectNamesAll(container, nil)
}

// AuthUrl retrieves the storage URL for this destination.
func (s *SwiftDestination) AuthUrl() string {
	return s.SwiftConnection.StorageUrl
}

// AuthToken returns the authentication token for this destination.
func (s *SwiftDestination) AuthToken() string {
	return s.SwiftConnection.AuthToken
}

// getAuthVersion extracts the OpenStack auth version from the end of an authURL.
func getAuthVersion(url string) (int, error) {
	authVersionRegex, err := regexp.Compile(".*/v([0-9])[.0-9]*/?$")
	if err != nil {
		return 0, fmt.Errorf("Unable to compile auth version regex")
	}
	matches := authVersionRegex.FindStringSubmatch(url)
	if len(matches) < 2 {
		return 0, fmt.Errorf("Unable to extract an auth version number from url %s", url)
	}
	authVersionNumber, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("Unable to convert version number %s to an integer", matches[1])
	}
	return authVersionNumber, nil
}

// Authenticate logs in to OpenStack object storage and returns a connection to the
// object store. The url MUST have its auth version at the end: https://example.com/v{1,2,3}
func Authenticate(username, apiKey, authURL, domain, tenant string) (Destination, error) {
	version, err := getAuthVersion(authURL)
	if err != nil {
		return nil, err
	}
	connection := swift.Connection{
		UserName:    username,
		ApiKey:      apiKey,
		AuthUrl:     authURL,
		Domain:      domain,
		Tenant:      tenant,
		AuthVersion: version,
	}
	if err := connection.Authenticate(); err != nil {
		return nil, fmt.Errorf("Failed to authenticate with object storage: %w", err)
	}
	return &SwiftDestination{SwiftConnection: &connection}, nil
}
