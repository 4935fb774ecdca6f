// Package theme maps alert types to their visual design.
// It ships embedded themes, loads user themes from
// ~/.config/alertkit/themes/ (TOML or YAML) and hot-reloads them on change.
package theme
