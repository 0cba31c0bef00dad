/*
Package objstore connects the stream package to OpenStack Object Storage.

The main fixture of the package is the Destination interface.
Destination provides all of the features that ObjectSource and
ObjectSink need to move data in and out of object storage. The default
implementation, SwiftDestination, essentially wraps the
github.com/ncw/swift.Connection. We did this to make it easy to write
tests against mock implementations of the Destination interface. Those
mock implementations can be found in the mock subpackage.

The intended use of objstore is to call Authenticate with your
credentials to set up a Destination, then hand it to NewObjectSource
or NewObjectSink and pump between it and any other stream endpoint.

The names of the parameters to Authenticate may not match the names of
the credentials that your OpenStack Object Store provides. In general,
password and API Key are the same thing. Also domain may be called
domainName and tenant may be projectID. Domain and tenant are optional
parameters in some auth versions. Please note that the auth URL must
end in its version, e.g. "https://identity.example.com/v3".
*/
package objstore
