// Package viz shows field map results in the terminal.
//
// It consumes grids and cross-sections and never feeds anything back into
// them:
//
//   - [Rebin]: block-mean downsampling of a section, the 1D counterpart of
//     merging 2x2 histogram bins and scaling by 1/4
//   - [PlotSections]: overlaid asciigraph plot of several sections
//   - [Sparkline] and the lipgloss styles used by the CLI
package viz
