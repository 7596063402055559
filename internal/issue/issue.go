// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	EngineNotFoundId Id = iota + 1
	ConfigLoadFailedId
	ArchiveUnreadableId
	PathResolutionFailedId
	LaunchFailedId
	RuntimeExitId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // project documentation links
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	engineNotFoundIssue = &Issue{
		id: EngineNotFoundId,
		mdMsg: `
# Container engine not found!

Backups run through an ephemeral container, so a working container engine is
required.

## Supported container engines:
- **Podman** (works rootless)
- **Docker**

## Things you can try:
- Install Podman:
  - Linux: ` + "`sudo apt install podman`" + ` or ` + "`sudo dnf install podman`" + `
  - macOS: ` + "`brew install podman`" + `
  - Windows: Download from https://podman.io

- Install Docker:
  - https://docs.docker.com/get-docker/

- If the engine is installed, make sure its daemon or socket is running:
~~~
$ docker version
$ podman version
~~~

- Pick a specific engine explicitly:
~~~
$ voltar --engine podman backup my-volume backup.tar.gz
~~~`,
		extLinks: []HttpLink{
			"https://podman.io/docs/installation",
			"https://docs.docker.com/get-docker/",
		},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the voltar configuration file.

## Configuration file locations:
- Linux: ~/.config/voltar/config.toml
- macOS: ~/Library/Application Support/voltar/config.toml
- Windows: %APPDATA%\voltar\config.toml

## Things you can try:
- Create a default configuration:
~~~
$ voltar config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/voltar/config.toml
~~~

## Example configuration:
~~~toml
engine = "auto"
image = "alpine"

[ui]
color_scheme = "auto"
verbose = false
~~~`,
	}

	archiveUnreadableIssue = &Issue{
		id: ArchiveUnreadableId,
		mdMsg: `
# Cannot read the backup archive!

The archive could not be opened or is not a gzip-compressed tar file. Restores
read the archive first to learn which volumes it contains, so an unreadable
archive stops the restore before anything else happens.

## Common causes:
- The path points to a file that does not exist
- The file was not produced by ` + "`voltar backup`" + ` (or ` + "`tar -czf`" + `)
- The file is truncated or corrupted

## Things you can try:
- Check what the archive contains:
~~~
$ voltar inspect backup.tar.gz
~~~

- Verify the file is a gzip archive:
~~~
$ file backup.tar.gz
$ tar -tzf backup.tar.gz
~~~

- Re-create the backup if the file is damaged`,
	}

	pathResolutionFailedIssue = &Issue{
		id: PathResolutionFailedId,
		mdMsg: `
# Cannot resolve the archive path!

The archive path could not be turned into a directory to mount plus a file
name inside it.

## Common causes:
- A parent directory in the path does not exist
- A symlink in the path points nowhere
- The path has no parent directory (filesystem root)

## Things you can try:
- Create the directory first:
~~~
$ mkdir -p /path/to/backups
$ voltar backup my-volume /path/to/backups/backup.tar.gz
~~~

- Use a path inside an existing directory
- Check symlinks along the path with ` + "`ls -l`" + ``,
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Could not launch the container runtime!

The engine binary was found but the backup container could not be started.

## Common causes:
- The engine daemon is not running
- Your user lacks permission to talk to the engine socket
- The engine binary is not executable

## Things you can try:
- Check the engine works at all:
~~~
$ docker run --rm alpine true
~~~

- For Docker, ensure you are in the docker group:
~~~
$ sudo usermod -aG docker $USER
~~~

- Use rootless Podman instead:
~~~
$ voltar --engine podman backup my-volume backup.tar.gz
~~~`,
		extLinks: []HttpLink{
			"https://docs.docker.com/engine/install/linux-postinstall/",
		},
	}

	runtimeExitIssue = &Issue{
		id: RuntimeExitId,
		mdMsg: `
# The backup container exited with an error!

The container runtime started but the tar process inside it (or the engine
itself) failed. voltar exits with the same status code the runtime reported.

## Common causes:
- The helper image could not be pulled (no network, unknown image)
- A named volume could not be mounted
- tar failed inside the container (disk full, permission denied)

## Things you can try:
- Re-run with verbose mode to see the full invocation:
~~~
$ voltar --verbose backup my-volume backup.tar.gz
~~~

- Check the volume names:
~~~
$ voltar volumes
~~~

- Pull the helper image manually to see pull errors:
~~~
$ docker pull alpine
~~~

- Check free disk space where the archive is written`,
	}

	issues = map[Id]*Issue{
		engineNotFoundIssue.Id():       engineNotFoundIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		archiveUnreadableIssue.Id():    archiveUnreadableIssue,
		pathResolutionFailedIssue.Id(): pathResolutionFailedIssue,
		launchFailedIssue.Id():         launchFailedIssue,
		runtimeExitIssue.Id():          runtimeExitIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
