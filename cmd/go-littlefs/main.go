// Command go-littlefs formats, mounts, and inspects littlefs volumes.
package main

import "github.com/deploymenttheory/go-littlefs/cmd"

func main() {
	cmd.Execute()
}
