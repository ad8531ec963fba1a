package pcs

// QDeviceAddCommand renders the quorum device creation command, model
// net. Only the 0.10 dialect has quorum device support.
func QDeviceAddCommand(d Dialect, host, algorithm string) (string, error) {
	if d != Dialect010 {
		return "", &UnsupportedVersionError{Version: string(d)}
	}
	return "pcs quorum device add model net host=" + host + " algorithm=" + algorithm, nil
}

// QDeviceUpdateCommand renders the quorum device settings update
// command.
func QDeviceUpdateCommand(d Dialect, host, algorithm string) (string, error) {
	if d != Dialect010 {
		return "", &UnsupportedVersionError{Version: string(d)}
	}
	return "pcs quorum device update model host=" + host + " algorithm=" + algorithm, nil
}

// QDeviceRemoveCommand renders the quorum device removal command.
func QDeviceRemoveCommand(d Dialect) (string, error) {
	if d != Dialect010 {
		return "", &UnsupportedVersionError{Version: string(d)}
	}
	return "pcs quorum device remove", nil
}
