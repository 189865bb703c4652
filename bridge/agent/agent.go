// Package agent implements bridge.Provider against a reflector agent
// running inside a child JVM.
//
// The agent is a small Java program (stubgen-agent.jar) started with the
// user's classpath. It answers JSON-RPC 2.0 requests over stdio using
// LSP-style Content-Length framing. One agent process is one reflection
// session; requests are serialized by the caller.
package agent

import (
	"context"
	"io"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/teranos/stubgen/bridge"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
)

// JSON-RPC error codes the agent uses for reflection failures.
const (
	codeTypeLoad     = -32001 // class or one of its dependencies failed to load
	codeNoSuchMember = -32002 // package/class/member lookup missed
)

// Options configures the agent launch.
type Options struct {
	// JavaPath is the java executable to run. Defaults to "java".
	JavaPath string

	// AgentJar is the path to stubgen-agent.jar.
	AgentJar string

	// Classpath entries, already glob-expanded (see ExpandClasspath).
	Classpath []string

	// JVMArgs is a shell-quoted string of extra JVM arguments,
	// e.g. "-Xmx2g -Dfile.encoding=UTF-8".
	JVMArgs string
}

// Client talks to one agent process. It implements bridge.Provider.
type Client struct {
	cmd  *exec.Cmd
	conn *jsonrpc2.Conn
}

var _ bridge.Provider = (*Client)(nil)

// stdio adapts the child process pipes to one io.ReadWriteCloser.
type stdio struct {
	io.ReadCloser  // child stdout
	io.WriteCloser // child stdin
}

func (s stdio) Close() error {
	werr := s.WriteCloser.Close()
	rerr := s.ReadCloser.Close()
	if werr != nil {
		return werr
	}
	return rerr
}

// Start launches the agent JVM and performs the protocol handshake.
// The returned Client must be Closed; Close kills the JVM outright
// because reflected libraries routinely leave non-daemon threads behind.
func Start(ctx context.Context, opts Options) (*Client, error) {
	javaPath := opts.JavaPath
	if javaPath == "" {
		javaPath = "java"
	}

	jvmArgs, err := shellquote.Split(opts.JVMArgs)
	if err != nil {
		return nil, errors.Wrap(err, "invalid --jvm-args")
	}

	args := append(jvmArgs, "-jar", opts.AgentJar)
	if len(opts.Classpath) > 0 {
		args = append(args, "--classpath", joinClasspath(opts.Classpath))
	}

	cmd := exec.CommandContext(ctx, javaPath, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "agent stdin")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "agent stdout")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.Wrap(err, "agent stderr")
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(errors.Wrap(errors.ErrSession, err.Error()), "starting reflection agent")
	}
	go forwardStderr(stderr)

	stream := jsonrpc2.NewBufferedStream(stdio{stdout, stdin}, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.HandlerWithError(handleAgentNotification))

	c := &Client{cmd: cmd, conn: conn}
	if err := c.conn.Call(ctx, "session/ping", nil, nil); err != nil {
		c.Close()
		return nil, errors.Wrap(errors.Wrap(errors.ErrSession, err.Error()), "agent handshake")
	}
	logger.Infow("reflection agent started", "java", javaPath, "classpath_entries", len(opts.Classpath))
	return c, nil
}

// handleAgentNotification surfaces agent-side log notifications.
// The agent never issues requests that expect a response.
func handleAgentNotification(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	if req.Method == "session/log" && req.Params != nil {
		logger.Debugw("agent", "payload", string(*req.Params))
	}
	return nil, nil
}

func forwardStderr(r io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			logger.Debugw("agent stderr", "output", string(buf[:n]))
		}
		if err != nil {
			return
		}
	}
}

// Close tears the session down. The JVM is halted forcefully: a cooperative
// shutdown can hang on lingering background threads started by reflected
// static initializers.
func (c *Client) Close() error {
	if c.conn != nil {
		c.conn.Close()
	}
	if c.cmd != nil && c.cmd.Process != nil {
		c.cmd.Process.Kill()
		c.cmd.Wait()
	}
	return nil
}

// call performs one round trip and maps agent error codes onto sentinels.
func (c *Client) call(ctx context.Context, method string, params, result interface{}) error {
	err := c.conn.Call(ctx, method, params, result)
	if err == nil {
		return nil
	}
	if rpcErr, ok := err.(*jsonrpc2.Error); ok {
		switch rpcErr.Code {
		case codeTypeLoad:
			return errors.Wrap(errors.ErrTypeLoad, rpcErr.Message)
		case codeNoSuchMember:
			return errors.Wrap(errors.ErrNoSuchMember, rpcErr.Message)
		}
	}
	return errors.Wrap(errors.Wrap(errors.ErrSession, err.Error()), method)
}

type packageParams struct {
	Package string `json:"package"`
}

type lookupParams struct {
	Package    string `json:"package"`
	SimpleName string `json:"simpleName"`
}

type classParams struct {
	Name string `json:"name"`
}

// Subpackages implements bridge.Provider.
func (c *Client) Subpackages(ctx context.Context, pkg string) ([]string, error) {
	var subs []string
	if err := c.call(ctx, "reflect/subpackages", packageParams{Package: pkg}, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// PackageClasses implements bridge.Provider.
func (c *Client) PackageClasses(ctx context.Context, pkg string) ([]*bridge.Class, error) {
	var classes []*bridge.Class
	if err := c.call(ctx, "reflect/classes", packageParams{Package: pkg}, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// LookupClass implements bridge.Provider.
func (c *Client) LookupClass(ctx context.Context, pkg, simpleName string) (*bridge.Class, error) {
	var cls bridge.Class
	if err := c.call(ctx, "reflect/lookupClass", lookupParams{Package: pkg, SimpleName: simpleName}, &cls); err != nil {
		return nil, err
	}
	return &cls, nil
}

// ClassByName implements bridge.Provider.
func (c *Client) ClassByName(ctx context.Context, binaryName string) (*bridge.Class, error) {
	var cls bridge.Class
	if err := c.call(ctx, "reflect/classByName", classParams{Name: binaryName}, &cls); err != nil {
		return nil, err
	}
	return &cls, nil
}

// Javadoc implements bridge.Provider.
func (c *Client) Javadoc(ctx context.Context, binaryName string) (*bridge.Doc, error) {
	var doc bridge.Doc
	if err := c.call(ctx, "reflect/javadoc", classParams{Name: binaryName}, &doc); err != nil {
		if errors.IsNoSuchMemberError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}
