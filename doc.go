/*
Package streamlygo makes moving chunked binary data between
heterogeneous endpoints easier.

The stream subpackage defines the core Source and Sink abstractions,
the concrete variants for files, in-memory buffers, readers, writers,
and channels, and the Pump that drives a transfer while guaranteeing
that the Sink is always finalized. The pipeline subpackage implements
a low-level channel-based API for when the Transfer type doesn't offer
the level of control that your application requires. The objstore
subpackage adds OpenStack Object Storage endpoints.

The root streamlygo package provides the Transfer type. A Transfer is
easy to use: it only has one method, Run(), that performs a
synchronous transfer (it will only return after the transfer is
complete). The Transfer also exposes a Status struct that can be used
during a transfer to query the progress of the transfer.
*/
package streamlygo
