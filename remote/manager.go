package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnsupportedOperation is returned by Dispatch for operation names
// outside the closed set.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// Operation names a host management routine. The set is closed and resolved
// at compile time in Dispatch.
type Operation string

const (
	OpSystemInfo      Operation = "system-info"
	OpStorageInfo     Operation = "storage-info"
	OpUSBDevices      Operation = "usb-devices"
	OpListPackages    Operation = "list-packages"
	OpUpdatePackages  Operation = "update-packages"
	OpInstallPackage  Operation = "install-package"
	OpSetupUSBStorage Operation = "setup-usb-storage"
	OpSetupVPN        Operation = "setup-vpn"
)

// Manager runs named management routines against a Session. Each routine is
// a fixed command sequence with its own timeout budget.
type Manager struct {
	session Session
}

// NewManager creates a Manager bound to the given session.
func NewManager(session Session) *Manager {
	return &Manager{session: session}
}

// Dispatch runs the named operation and returns its rendered output.
// Unknown names return ErrUnsupportedOperation rather than failing lookup
// at runtime. arg carries the package name for install-package and the
// mount point for setup-usb-storage; other operations ignore it.
func (m *Manager) Dispatch(ctx context.Context, op Operation, arg string) (string, error) {
	switch op {
	case OpSystemInfo:
		return m.renderInfo(ctx, systemInfoCommands)
	case OpStorageInfo:
		return m.renderInfo(ctx, storageInfoCommands)
	case OpUSBDevices:
		devices, err := m.USBDevices(ctx)
		if err != nil {
			return "", err
		}
		return strings.Join(devices, "\n"), nil
	case OpListPackages:
		packages, err := m.ListPackages(ctx)
		if err != nil {
			return "", err
		}
		return strings.Join(packages, "\n"), nil
	case OpUpdatePackages:
		if err := m.UpdatePackages(ctx); err != nil {
			return "", err
		}
		return "package lists updated", nil
	case OpInstallPackage:
		if err := m.InstallPackage(ctx, arg); err != nil {
			return "", err
		}
		return "installed " + arg, nil
	case OpSetupUSBStorage:
		if err := m.SetupUSBStorage(ctx, arg); err != nil {
			return "", err
		}
		return "usb storage configured", nil
	case OpSetupVPN:
		return m.SetupVPN(ctx)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedOperation, op)
	}
}

type infoCommand struct {
	key string
	cmd string
}

var systemInfoCommands = []infoCommand{
	{"uptime", "uptime"},
	{"memory", "free -h"},
	{"storage", "df -h"},
	{"kernel", "uname -r"},
	{"release", "cat /etc/openwrt_release | grep DISTRIB_DESCRIPTION"},
	{"cpu", `cat /proc/cpuinfo | grep "model name"`},
}

var storageInfoCommands = []infoCommand{
	{"disk_usage", "df -h"},
	{"block_devices", "lsblk"},
	{"mount_points", `mount | grep -E "^/dev"`},
}

// SystemInfo gathers basic host facts. Individual command failures are
// recorded in the returned map, not propagated; only channel-level errors
// fail the call.
func (m *Manager) SystemInfo(ctx context.Context) (map[string]string, error) {
	return m.gatherInfo(ctx, systemInfoCommands)
}

// StorageInfo gathers disk, block device, and mount information.
func (m *Manager) StorageInfo(ctx context.Context) (map[string]string, error) {
	return m.gatherInfo(ctx, storageInfoCommands)
}

func (m *Manager) gatherInfo(ctx context.Context, commands []infoCommand) (map[string]string, error) {
	info := make(map[string]string, len(commands))
	for _, c := range commands {
		res, err := m.session.Execute(ctx, c.cmd, DefaultTimeout)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.key, err)
		}
		if res.ExitCode == 0 {
			info[c.key] = strings.TrimSpace(res.Stdout)
		} else {
			info[c.key] = "error: " + strings.TrimSpace(res.Stderr)
		}
	}
	return info, nil
}

func (m *Manager) renderInfo(ctx context.Context, commands []infoCommand) (string, error) {
	info, err := m.gatherInfo(ctx, commands)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, c := range commands {
		b.WriteString(c.key)
		b.WriteString(": ")
		b.WriteString(info[c.key])
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// USBDevices lists attached USB devices via lsusb.
func (m *Manager) USBDevices(ctx context.Context) ([]string, error) {
	res, err := m.session.Execute(ctx, "lsusb", DefaultTimeout)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("lsusb exited %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return splitLines(res.Stdout), nil
}

// ListPackages returns the names of all installed packages.
func (m *Manager) ListPackages(ctx context.Context) ([]string, error) {
	res, err := m.session.Execute(ctx, "opkg list-installed", DefaultTimeout)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("opkg list-installed exited %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}

	var packages []string
	for _, line := range splitLines(res.Stdout) {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			packages = append(packages, fields[0])
		}
	}
	return packages, nil
}

// UpdatePackages refreshes the package lists.
func (m *Manager) UpdatePackages(ctx context.Context) error {
	res, err := m.session.Execute(ctx, "opkg update", UpdateTimeout)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("opkg update exited %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return nil
}

// InstallPackage installs one package by name.
func (m *Manager) InstallPackage(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("package name is empty")
	}
	res, err := m.session.Execute(ctx, "opkg install "+name, InstallTimeout)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("opkg install %s exited %d: %s", name, res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return nil
}

// SetupUSBStorage installs the storage packages and configures fstab for the
// given mount point ("/mnt/usb" when empty). The sequence aborts on the
// first failed step.
func (m *Manager) SetupUSBStorage(ctx context.Context, mountPoint string) error {
	if mountPoint == "" {
		mountPoint = "/mnt/usb"
	}

	steps := []struct {
		cmd     string
		timeout time.Duration
	}{
		{"opkg update", UpdateTimeout},
		{"opkg install block-mount kmod-fs-ext4 kmod-usb-storage e2fsprogs", InstallTimeout},
		{"mkdir -p " + mountPoint, DefaultTimeout},
		{"block detect > /etc/config/fstab", DefaultTimeout},
		{fmt.Sprintf("uci set fstab.@mount[0].target='%s'", mountPoint), DefaultTimeout},
		{"uci set fstab.@mount[0].enabled='1'", DefaultTimeout},
		{"uci commit fstab", DefaultTimeout},
		{"/etc/init.d/fstab enable", DefaultTimeout},
		{"/etc/init.d/fstab start", DefaultTimeout},
	}

	for _, step := range steps {
		res, err := m.session.Execute(ctx, step.cmd, step.timeout)
		if err != nil {
			return fmt.Errorf("%q: %w", step.cmd, err)
		}
		if res.ExitCode != 0 {
			return fmt.Errorf("%q exited %d: %s", step.cmd, res.ExitCode, strings.TrimSpace(res.Stderr))
		}
	}
	return nil
}

var vpnPackages = []string{
	"openvpn-openssl",
	"luci-app-openvpn",
	"wget",
	"unzip",
}

const vpnSetupNotice = `OpenVPN base setup completed. Manual configuration required:
1. Download OpenVPN configs from your provider
2. Upload .ovpn files to /etc/openvpn/nordvpn/
3. Configure credentials in /etc/openvpn/nordvpn/auth.txt
4. Enable the service: /etc/init.d/openvpn enable && /etc/init.d/openvpn start`

// SetupVPN installs the OpenVPN client packages and creates the provider
// config directory. The sequence aborts on the first failed step; on success
// the returned text lists the manual steps that remain.
func (m *Manager) SetupVPN(ctx context.Context) (string, error) {
	if err := m.UpdatePackages(ctx); err != nil {
		return "", err
	}
	for _, pkg := range vpnPackages {
		if err := m.InstallPackage(ctx, pkg); err != nil {
			return "", err
		}
	}

	res, err := m.session.Execute(ctx, "mkdir -p /etc/openvpn/nordvpn", DefaultTimeout)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("mkdir -p /etc/openvpn/nordvpn exited %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}

	return vpnSetupNotice, nil
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
