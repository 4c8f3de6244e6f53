// Package imageio implements the NITF image segment's block/mask-table
// layout, the SubWindow read path, and the segment-partitioning writer.
// It dispatches block encode/decode to a pluggable compression plugin
// rather than reimplementing any image codec itself.
package imageio
