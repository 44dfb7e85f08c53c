package main

import "github.com/thereayou/teamchat/cmd/server"

func main() {
	server.NewServer().Run()
}
