// ABOUTME: mDNS service discovery for SEA stream servers
// ABOUTME: Handles both advertisement (server-initiated) and browsing (client-initiated)
package seastream

import (
	"context"
	"fmt"
	"log"
	"net"

	"github.com/hashicorp/mdns"
)

// DiscoveryConfig holds discovery configuration.
type DiscoveryConfig struct {
	ServiceName string
	Port        int
	ServerMode  bool // set by the server; Advertise and Browse do not read it
}

// Discovery handles mDNS advertise/browse operations for one process.
type Discovery struct {
	config  DiscoveryConfig
	ctx     context.Context
	cancel  context.CancelFunc
	servers chan *ServerInfo
}

// ServerInfo describes a discovered SEA stream server.
type ServerInfo struct {
	Name string
	Host string
	Port int
}

// NewDiscovery creates a discovery manager.
func NewDiscovery(config DiscoveryConfig) *Discovery {
	ctx, cancel := context.WithCancel(context.Background())

	return &Discovery{
		config:  config,
		ctx:     ctx,
		cancel:  cancel,
		servers: make(chan *ServerInfo, 10),
	}
}

// Advertise advertises this process as a SEA stream server via mDNS.
func (d *Discovery) Advertise() error {
	ips, err := localIPv4s()
	if err != nil {
		return fmt.Errorf("seastream: local IPs: %w", err)
	}

	service, err := mdns.NewMDNSService(
		d.config.ServiceName,
		"_sea-server._tcp",
		"",
		"",
		d.config.Port,
		ips,
		[]string{"path=/sea"},
	)
	if err != nil {
		return fmt.Errorf("seastream: mdns service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return fmt.Errorf("seastream: mdns server: %w", err)
	}

	log.Printf("seastream: advertising %q on port %d", d.config.ServiceName, d.config.Port)

	go func() {
		<-d.ctx.Done()
		server.Shutdown()
	}()

	return nil
}

// Browse starts background discovery of SEA stream servers on the LAN.
func (d *Discovery) Browse() {
	go d.browseLoop()
}

func (d *Discovery) browseLoop() {
	for {
		select {
		case <-d.ctx.Done():
			return
		default:
		}

		entries := make(chan *mdns.ServiceEntry, 10)

		go func() {
			for entry := range entries {
				server := &ServerInfo{
					Name: entry.Name,
					Host: entry.AddrV4.String(),
					Port: entry.Port,
				}
				log.Printf("seastream: discovered %s at %s:%d", server.Name, server.Host, server.Port)
				select {
				case d.servers <- server:
				case <-d.ctx.Done():
					return
				}
			}
		}()

		mdns.Query(&mdns.QueryParam{
			Service: "_sea-server._tcp",
			Domain:  "local",
			Timeout: 3,
			Entries: entries,
		})
		close(entries)
	}
}

// Servers returns the channel of discovered servers.
func (d *Discovery) Servers() <-chan *ServerInfo {
	return d.servers
}

// Stop halts advertisement/browsing and releases background goroutines.
func (d *Discovery) Stop() {
	d.cancel()
}

func localIPv4s() ([]net.IP, error) {
	var ips []net.IP

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				if ipnet.IP.To4() != nil {
					ips = append(ips, ipnet.IP)
				}
			}
		}
	}
	return ips, nil
}
