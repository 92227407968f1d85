package math

/**
 * @brief Computes one flat normal per triangle and writes it to each of the
 * triangle's three vertices. A vertex shared by several triangles keeps the
 * normal of the last triangle that references it, so shading stays faceted.
 * Degenerate triangles produce a NaN normal.
 *
 * @param positions Vertex positions; only X, Y and Z are used.
 * @param indices Triangle list, length a multiple of 3, every index < len(positions).
 * @return One normal per vertex. Vertices referenced by no triangle keep a zero normal.
 */
func GenerateFaceNormals(positions []Vec4, indices []uint16) []Vec3 {
	normals := make([]Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		p0 := positions[i0].ToVec3()
		edge1 := positions[i1].ToVec3().Sub(p0)
		edge2 := positions[i2].ToVec3().Sub(p0)

		// NOTE: face normal only. Smoothing would need a separate averaging pass.
		normal := edge1.Cross(edge2).Normalize()
		normals[i0] = normal
		normals[i1] = normal
		normals[i2] = normal
	}
	return normals
}
