package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aiwiki/aiwiki/internal/analyzer"
	"github.com/aiwiki/aiwiki/internal/artifacts"
	"github.com/aiwiki/aiwiki/internal/generator"
	"github.com/aiwiki/aiwiki/internal/settings"
)

var (
	generateTarget   string
	generateSettings string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Analyze a target project and write the documentation artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := filepath.Abs(generateTarget)
		if err != nil {
			return err
		}

		st, err := settings.Load(target, generateSettings)
		if err != nil {
			return err
		}

		fmt.Printf("🔍 Analyzing project at: %s\n", target)
		fmt.Printf("📋 Using settings: %s\n", st.Path)

		analysis, err := analyzer.New(target, st).Analyze()
		if err != nil {
			return err
		}

		arts := generator.Generate(analysis, time.Now())
		store := artifacts.NewStore(filepath.Join(target, "docs"))
		if err := store.Write(arts); err != nil {
			return err
		}

		models, serializers, views := analysis.Counts()
		fmt.Printf("\n📊 Analysis summary:\n")
		fmt.Printf("   • %d models\n", models)
		fmt.Printf("   • %d serializers\n", serializers)
		fmt.Printf("   • %d views\n", views)
		if n := len(analysis.Warnings); n > 0 {
			fmt.Printf("   • %d warnings (see log)\n", n)
		}
		fmt.Printf("\n📁 Output directory: %s\n", store.Dir)
		fmt.Printf("📄 Files created: %s, %s, %s\n", artifacts.MarkdownFile, artifacts.DiagramFile, artifacts.HTMLFile)
		fmt.Printf("\n💡 Run 'aiwiki serve' in %s to browse the documentation.\n", target)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateTarget, "target", "", "path to the target project directory")
	generateCmd.Flags().StringVar(&generateSettings, "settings", "", "settings file declaring the apps to document")
	_ = generateCmd.MarkFlagRequired("target")
	_ = generateCmd.MarkFlagRequired("settings")
}
