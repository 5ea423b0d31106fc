package runtime

import (
	"context"
	"io"
)

// Compose runs one-off commands in a docker compose service.
type Compose struct {
	Runner     Runner
	DockerBin  string
	ProjectDir string
	File       string
	Service    string
}

// ScriptCommand builds the invocation that mounts hostPath at containerPath
// and executes it with bash in a throwaway container:
//
//	docker compose --project-directory <dir> -f <file> run --rm \
//	    -v <host>:<container> --entrypoint bash <service> <container>
func (c *Compose) ScriptCommand(hostPath, containerPath string) Command {
	return Command{
		Name: orName(c.DockerBin, "docker"),
		Args: []string{
			"compose",
			"--project-directory", c.ProjectDir,
			"-f", c.File,
			"run", "--rm",
			"-v", hostPath + ":" + containerPath,
			"--entrypoint", "bash",
			c.Service,
			containerPath,
		},
	}
}

// RunScript executes hostPath inside the service, streaming output to the
// given writers.
func (c *Compose) RunScript(ctx context.Context, hostPath, containerPath string, stdout, stderr io.Writer) (*Output, error) {
	cmd := c.ScriptCommand(hostPath, containerPath)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return c.Runner.Run(ctx, cmd)
}
