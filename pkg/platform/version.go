package platform

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/mod/semver"

	quillerrors "github.com/go-quill/quill/pkg/errors"
)

// MinimumHostVersion is the oldest native host protocol version that carries
// the delegate-based event model the bridge depends on. Hosts below it cannot
// deliver editing events and are rejected at attach time.
const MinimumHostVersion = "v1.2.0"

// HostInfo describes the attached native host as reported by its handshake.
type HostInfo struct {
	// Version is the host protocol version (semver, "v"-prefixed).
	Version string

	// SecureDiscardsText reports the platform quirk where the native text
	// control silently discards its displayed text when secure entry is
	// enabled while the control is focused. The bridge compensates only
	// when this is set.
	SecureDiscardsText bool
}

var (
	hostInfoMu sync.RWMutex
	hostInfo   *HostInfo
)

// ErrHostTooOld indicates the native host predates the delegate event model.
var ErrHostTooOld = fmt.Errorf("native host below minimum version %s", MinimumHostVersion)

// AttachHost installs the native host, performs the version handshake, and
// gates on MinimumHostVersion. It must be called before any control is
// created.
func AttachHost(host NativeHost) (*HostInfo, error) {
	SetNativeHost(host)

	result, err := controlRegistry().channel.Invoke("handshake", nil)
	if err != nil {
		return nil, err
	}

	params, _ := result.(map[string]any)
	version, _ := params["version"].(string)
	discards, _ := params["secureDiscardsText"].(bool)

	info := &HostInfo{
		Version:            canonicalVersion(version),
		SecureDiscardsText: discards,
	}

	if !semver.IsValid(info.Version) || semver.Compare(info.Version, MinimumHostVersion) < 0 {
		err := fmt.Errorf("%w (host reported %q)", ErrHostTooOld, version)
		quillerrors.Report(&quillerrors.Error{
			Op:      "platform.AttachHost",
			Kind:    quillerrors.KindVersion,
			Channel: controlChannelName,
			Err:     err,
		})
		return nil, err
	}

	hostInfoMu.Lock()
	hostInfo = info
	hostInfoMu.Unlock()
	return info, nil
}

// CurrentHostInfo returns the attached host's handshake info, or nil when no
// host has completed AttachHost.
func CurrentHostInfo() *HostInfo {
	hostInfoMu.RLock()
	defer hostInfoMu.RUnlock()
	return hostInfo
}

// HostDiscardsTextOnSecure reports whether the attached host has the
// secure-entry text-loss quirk. False when no host is attached.
func HostDiscardsTextOnSecure() bool {
	return hostDiscardsTextOnSecure()
}

// hostDiscardsTextOnSecure reports the secure-entry text-loss quirk.
func hostDiscardsTextOnSecure() bool {
	hostInfoMu.RLock()
	defer hostInfoMu.RUnlock()
	return hostInfo != nil && hostInfo.SecureDiscardsText
}

// canonicalVersion normalizes a host-reported version to semver form.
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return v
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
