package filesystem

// DeviceID on Windows is a no-op that returns 0 and never fails. Directory
// hierarchies can't span devices on Windows, so device-based cycle
// accounting has nothing to distinguish; volume serial numbers could fill
// this role but can't be queried cheaply for every entry.
func DeviceID(path string) (uint64, error) {
	return 0, nil
}
