// Package building defines the barn model consumed by the beam and
// space-layout engines: overall [Dimensions], the four [Wall] positions, and
// the [Opening] records (doors, windows, ...) placed on them.
//
// The central operation is [FeatureBounds], which converts an opening's
// alignment, offsets and size into absolute [geom.Bounds] on its host wall's
// center-origin plane. Every downstream computation starts from those bounds.
//
// Values in this package are plain data. The engines treat them as immutable
// inputs and never write back into them.
package building
