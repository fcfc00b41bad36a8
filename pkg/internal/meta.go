package pkg

const (
	AppName    = "Beacon"
	AppVersion = "1.2.0"
)
