package ports

// Navigator is the single side-effect channel through which the session
// manager requests client-side navigation. Keeping redirects behind a port
// lets tests assert on emitted destinations instead of inspecting transports.
type Navigator interface {
	Navigate(path string)
}
