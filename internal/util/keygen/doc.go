// Package keygen generates RSA key pairs for SSH access to portal machines.
//
// Keys are produced in PEM format (private) and OpenSSH authorized_keys
// format (public). Save writes the pair next to each other the way
// ssh-keygen does, so the private key can be used with ssh -i.
package keygen
