// Package config loads the portal configuration.
//
// Settings come from a vmportal.yaml file, found with FindConfigFile, plus
// the HCLOUD_TOKEN environment variable. Timeouts and retry parameters are
// read from the environment by LoadTimeouts.
//
// The file is small:
//
//	tenancy: acme
//	username: alice
//	location: fsn1
//	apps:
//	  enabled: true
//	  proxy_sshd_host: proxy.example.com
//	  proxy_sshd_port: 2222
//	  post_deploy_script_url: https://example.com/post-deploy.sh
//	ssh:
//	  allowed_key_types: [ssh-rsa, ssh-ed25519]
//	  rsa_min_bits: 4096
//	  can_update: true
//	  private_key_path: ~/.ssh/vmportal_rsa
//	metrics:
//	  listen_address: 127.0.0.1:9464
//	log:
//	  file: vmportal.log
//	  verbosity: 1
package config
