package testutil

// OSReleaseDebian is a minimal Debian bookworm os-release.
const OSReleaseDebian = `PRETTY_NAME="Debian GNU/Linux 12 (bookworm)"
NAME="Debian GNU/Linux"
VERSION_ID="12"
VERSION="12 (bookworm)"
VERSION_CODENAME=bookworm
ID=debian
HOME_URL="https://www.debian.org/"
`

// OSReleaseUbuntu is an os-release for an unsupported distribution.
const OSReleaseUbuntu = `NAME="Ubuntu"
VERSION_ID="24.04"
VERSION_CODENAME=noble
ID=ubuntu
`

// InterfacesStatic is a typical single-NIC static configuration.
const InterfacesStatic = `auto lo
iface lo inet loopback

auto eth0
iface eth0 inet static
	address 10.0.0.5
	netmask 255.255.255.0
	gateway 10.0.0.1
	dns-nameservers 10.0.0.1
`

// PostfixMainCF is a postfix main.cf with the default inet_protocols line.
const PostfixMainCF = `smtpd_banner = $myhostname ESMTP $mail_name
biff = no
inet_interfaces = all
inet_protocols = all
`
