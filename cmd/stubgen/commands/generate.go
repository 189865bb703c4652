package commands

import (
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/stubgen/bridge/agent"
	"github.com/teranos/stubgen/config"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
	"github.com/teranos/stubgen/pystub"
)

var (
	generateClasspath     string
	generateJVM           string
	generateJVMArgs       string
	generateAgentJar      string
	generateOutputDir     string
	generateNoJavadoc     bool
	generateNoStubsSuffix bool
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate [packages...]",
	Short: "Generate Python stub packages for Java packages",
	Long: `Generate PEP-484 stub files for the given Java packages and all of
their subpackages.

A reflection agent JVM is started with the given classpath; each package
becomes a Python stub package with one __init__.pyi. Classes that fail to
load are skipped with a warning, and unresolvable references degrade to
empty placeholder classes, so a partial classpath still produces a usable
stub tree.

Examples:
  stubgen generate java.util java.io
  stubgen generate -c 'lib/*.jar:classes' -o stubs com.example
  stubgen generate --jvm /opt/jdk/bin/java --jvm-args '-Xmx2g' org.slf4j`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateClasspath, "classpath", "c", "", "Colon-delimited classpath, glob patterns allowed (e.g. 'lib/*.jar')")
	GenerateCmd.Flags().StringVar(&generateJVM, "jvm", "", "Path to the java executable (default: from config, else 'java')")
	GenerateCmd.Flags().StringVar(&generateJVMArgs, "jvm-args", "", "Extra JVM arguments, shell-quoted (e.g. '-Xmx2g -Dkey=value')")
	GenerateCmd.Flags().StringVar(&generateAgentJar, "agent-jar", "", "Path to stubgen-agent.jar (default: next to the stubgen binary)")
	GenerateCmd.Flags().StringVarP(&generateOutputDir, "output-dir", "o", "", "Directory to write stub packages under (default: current directory)")
	GenerateCmd.Flags().BoolVar(&generateNoJavadoc, "no-javadoc", false, "Skip docstring extraction from javadoc")
	GenerateCmd.Flags().BoolVar(&generateNoStubsSuffix, "no-stubs-suffix", false, "Do not append the PEP-561 '-stubs' suffix to the top-level directory")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	classpath := generateClasspath
	if !cmd.Flags().Changed("classpath") {
		classpath = cfg.JVM.Classpath
	}
	javaPath := generateJVM
	if !cmd.Flags().Changed("jvm") {
		javaPath = cfg.JVM.Java
	}
	jvmArgs := generateJVMArgs
	if !cmd.Flags().Changed("jvm-args") {
		jvmArgs = cfg.JVM.Args
	}
	outputDir := generateOutputDir
	if !cmd.Flags().Changed("output-dir") {
		outputDir = cfg.Output.Dir
	}
	includeJavadoc := cfg.Output.Javadoc && !generateNoJavadoc
	stubsSuffix := cfg.Output.StubsSuffix && !generateNoStubsSuffix

	agentJar := generateAgentJar
	if agentJar == "" {
		agentJar = cfg.JVM.AgentJar
	}
	if agentJar == "" {
		agentJar, err = bundledAgentJar()
		if err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	client, err := agent.Start(ctx, agent.Options{
		JavaPath:  javaPath,
		AgentJar:  agentJar,
		Classpath: agent.ExpandClasspath(classpath),
		JVMArgs:   jvmArgs,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	gen := pystub.New(client, pystub.Options{
		OutputDir:      outputDir,
		IncludeJavadoc: includeJavadoc,
		StubsSuffix:    stubsSuffix,
	})
	stats, err := gen.Generate(ctx, args)
	if err != nil {
		return err
	}

	if logger.JSONOutput {
		logger.Infow("stub generation complete",
			"packages", stats.Packages,
			"classes", stats.Classes,
			"placeholders", stats.Placeholders,
			"failed", stats.Failed,
			"output_dir", outputDir,
		)
		return nil
	}
	pterm.Success.Printfln("Generated %d packages (%d classes) under %s",
		stats.Packages, stats.Classes, outputDir)
	if stats.Placeholders > 0 {
		pterm.Warning.Printfln("%d referenced classes were unresolvable and got empty placeholder stubs", stats.Placeholders)
	}
	if stats.Failed > 0 {
		pterm.Warning.Printfln("%d classes failed to load and were skipped (rerun with -v for details)", stats.Failed)
	}
	return nil
}

// bundledAgentJar locates stubgen-agent.jar next to the running binary.
func bundledAgentJar() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "locating stubgen binary")
	}
	jar := filepath.Join(filepath.Dir(exe), "stubgen-agent.jar")
	if _, err := os.Stat(jar); err != nil {
		return "", errors.WithHint(
			errors.Newf("agent jar not found at %s", jar),
			"pass --agent-jar or set jvm.agent_jar in stubgen.toml")
	}
	return jar, nil
}
