package client

// SetPageSizes overrides the listing and record page sizes.
func (c *SubgraphClient) SetPageSizes(idsPageSize, assetsPageSize int) {
	c.idsPageSize = idsPageSize
	c.assetsPageSize = assetsPageSize
}
